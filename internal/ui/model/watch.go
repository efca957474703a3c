package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
	"github.com/palemoky/king-of-montenegro/internal/protocol/convert"
	"github.com/palemoky/king-of-montenegro/internal/ui/common"
	"github.com/palemoky/king-of-montenegro/internal/ui/view"
)

// WatchModel renders the spectator feed of a running game.
type WatchModel struct {
	serverURL string
	matchID   string

	snapshot *game.Snapshot
	over     *protocol.GameOverPayload
	status   string
	err      string
	closed   bool

	width  int
	height int
}

// NewWatchModel creates a spectator model for serverURL.
func NewWatchModel(serverURL string) *WatchModel {
	return &WatchModel{
		serverURL: serverURL,
		status:    "Connecting to " + serverURL + "...",
	}
}

func (m *WatchModel) Init() tea.Cmd { return nil }

// Snapshot returns the last snapshot received, or nil.
func (m *WatchModel) Snapshot() *game.Snapshot { return m.snapshot }

// Status returns the connection status line.
func (m *WatchModel) Status() string { return m.status }

// Update handles tea messages.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ServerMessage:
		m.handleServerMessage(msg.Msg)

	case ReconnectingMsg:
		m.status = fmt.Sprintf("🔄 Reconnecting (%d/%d)...", msg.Attempt, msg.MaxTries)

	case ReconnectSuccessMsg:
		m.status = "✅ Reconnected"

	case ConnectionClosedMsg:
		m.closed = true
		m.status = "Connection closed"

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *WatchModel) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		if p, err := protocol.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			if p.MatchID != m.matchID {
				m.over = nil
			}
			m.matchID = p.MatchID
		}
		m.status = "Watching " + m.serverURL

	case protocol.MsgSnapshot:
		p, err := protocol.ParsePayload[protocol.SnapshotPayload](msg)
		if err != nil {
			m.err = err.Error()
			return
		}
		s := convert.PayloadToSnapshot(*p)
		m.snapshot = &s
		m.err = ""

	case protocol.MsgGameOver:
		if p, err := protocol.ParsePayload[protocol.GameOverPayload](msg); err == nil {
			m.over = p
		}

	case protocol.MsgError:
		if p, err := protocol.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.err = p.Message
		}
	}
}

// View renders the model.
func (m *WatchModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sb strings.Builder
	switch {
	case m.snapshot != nil:
		sb.WriteString(view.TableView(*m.snapshot, view.Spectator, m.width))
	case m.closed:
		sb.WriteString("No game to watch.")
	default:
		sb.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, "Waiting for the game to start..."))
	}
	sb.WriteString("\n")

	if m.over != nil {
		sb.WriteString(gameOverLine(*m.over))
		sb.WriteString("\n")
	}
	if m.err != "" {
		sb.WriteString(common.ErrorStyle.Render(m.err))
		sb.WriteString("\n")
	}
	sb.WriteString(common.HintStyle.Render(m.status + " · q to quit"))

	return common.DocStyle.Render(sb.String())
}

func gameOverLine(p protocol.GameOverPayload) string {
	if p.WinnerName != "" {
		return common.TitleStyle(fmt.Sprintf("%s %s wins after %d rounds", common.TrophyIcon, p.WinnerName, p.Rounds))
	}
	return common.TitleStyle(fmt.Sprintf("Game over (%s) after %d rounds", p.Reason, p.Rounds))
}
