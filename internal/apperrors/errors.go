package apperrors

import (
	"errors"

	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

// GameError 游戏错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidIndex       = &GameError{Code: protocol.ErrCodeInvalidIndex, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidIndex]}
	ErrInvalidKing        = &GameError{Code: protocol.ErrCodeInvalidKing, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidKing]}
	ErrEmptyPile          = &GameError{Code: protocol.ErrCodeEmptyPile, Message: protocol.ErrorMessages[protocol.ErrCodeEmptyPile]}
	ErrUnrecognizedAction = &GameError{Code: protocol.ErrCodeUnrecognizedAction, Message: protocol.ErrorMessages[protocol.ErrCodeUnrecognizedAction]}
	ErrWarUnavailable     = &GameError{Code: protocol.ErrCodeWarUnavailable, Message: protocol.ErrorMessages[protocol.ErrCodeWarUnavailable]}
	ErrProviderFailure    = &GameError{Code: protocol.ErrCodeProviderFailure, Message: protocol.ErrorMessages[protocol.ErrCodeProviderFailure]}
	ErrDeckExhausted      = &GameError{Code: protocol.ErrCodeDeckExhausted, Message: protocol.ErrorMessages[protocol.ErrCodeDeckExhausted]}
)

// IsRecoverable 可重新提示同一玩家的错误
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrInvalidKing) ||
		errors.Is(err, ErrEmptyPile) ||
		errors.Is(err, ErrUnrecognizedAction) ||
		errors.Is(err, ErrWarUnavailable)
}

// Code 提取错误码，非 GameError 返回 ErrCodeUnknown
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
