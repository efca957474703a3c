// Package model contains the terminal UI model.
package model

import (
	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

// Screen represents what the model is currently showing.
type Screen int

const (
	ScreenTable    Screen = iota // table, waiting for the opponent
	ScreenInput                  // table, waiting for our command
	ScreenRules                  // rules overlay
	ScreenGameOver               // final result
)

// --- Tea Messages ---

// SnapshotMsg carries a state update from the running game.
type SnapshotMsg struct {
	Snapshot game.Snapshot
}

// PromptMsg asks the local player for a command.
type PromptMsg struct {
	Prompt game.Prompt
}

// GameDoneMsg reports that the game loop returned.
type GameDoneMsg struct {
	Result game.Result
	Err    error
}

// maxHistory caps the message log.
const maxHistory = 200

// ServerMessage wraps a spectator feed message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ReconnectingMsg indicates reconnection in progress.
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg indicates successful reconnection.
type ReconnectSuccessMsg struct{}

// ConnectionClosedMsg indicates the feed is gone for good.
type ConnectionClosedMsg struct{}
