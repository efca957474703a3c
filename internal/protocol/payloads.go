package protocol

// CardInfo 牌信息
type CardInfo struct {
	Suit int    `json:"suit"`
	Rank int    `json:"rank"`
	Text string `json:"text"` // 例如 "10♥"
}

// PlayInfo 出牌堆中的一手
type PlayInfo struct {
	Player int       `json:"player"`
	King   *CardInfo `json:"king,omitempty"` // 仅 wild 出牌
	Card   CardInfo  `json:"card"`
}

// PlayerInfo 观战视角下的玩家信息（不含手牌内容）
type PlayerInfo struct {
	Name     string        `json:"name"`
	HandSize int           `json:"hand_size"`
	Armies   [4][]CardInfo `json:"armies"` // 按 spades/hearts/diamonds/clubs 顺序
}

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	SpectatorID string `json:"spectator_id"`
	MatchID     string `json:"match_id"`
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// SnapshotPayload 对局快照
type SnapshotPayload struct {
	MatchID     string        `json:"match_id"`
	Round       int           `json:"round"`
	Phase       string        `json:"phase"`
	Acting      int           `json:"acting"`
	Players     [2]PlayerInfo `json:"players"`
	Reveal      *CardInfo     `json:"reveal,omitempty"`
	AsideKing   *CardInfo     `json:"aside_king,omitempty"`
	Pile        []PlayInfo    `json:"pile"`
	DeckSize    int           `json:"deck_size"`
	DiscardSize int           `json:"discard_size"`
	Message     string        `json:"message,omitempty"`
}

// GameOverPayload 对局结束
type GameOverPayload struct {
	MatchID    string `json:"match_id"`
	Winner     int    `json:"winner"` // -1 表示无胜者
	WinnerName string `json:"winner_name,omitempty"`
	Reason     string `json:"reason"`
	Rounds     int    `json:"rounds"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
