package protocol

// 错误码
const (
	ErrCodeUnknown            = 1000
	ErrCodeInvalidMsg         = 1001
	ErrCodeInvalidIndex       = 3001
	ErrCodeInvalidKing        = 3002
	ErrCodeEmptyPile          = 3003
	ErrCodeUnrecognizedAction = 3004
	ErrCodeWarUnavailable     = 3005
	ErrCodeProviderFailure    = 4001
	ErrCodeDeckExhausted      = 4002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:            "unknown error",
	ErrCodeInvalidMsg:         "invalid message",
	ErrCodeInvalidIndex:       "index out of range",
	ErrCodeInvalidKing:        "wild play needs a king",
	ErrCodeEmptyPile:          "nothing to call",
	ErrCodeUnrecognizedAction: "unknown command",
	ErrCodeWarUnavailable:     "war not possible on that suit",
	ErrCodeProviderFailure:    "action source failed",
	ErrCodeDeckExhausted:      "no further duels possible",
}
