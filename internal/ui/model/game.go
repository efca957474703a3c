package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/ui/common"
	"github.com/palemoky/king-of-montenegro/internal/ui/view"
)

const logHeight = 6

// GameModel is the bubbletea model of a local game seen from one seat.
type GameModel struct {
	seat   int
	submit func(string)

	screen   Screen
	previous Screen // screen to return to from the rules

	snapshot *game.Snapshot
	prompt   *game.Prompt
	result   *game.Result
	err      error

	history []string
	log     viewport.Model

	// UI components
	input  textinput.Model
	help   help.Model
	keys   KeyMap
	width  int
	height int
}

// NewGameModel creates a model for the player at seat. submit receives
// each command the player enters.
func NewGameModel(seat int, submit func(string)) *GameModel {
	ti := textinput.New()
	ti.Placeholder = "waiting for the opponent..."
	ti.CharLimit = 40
	ti.Width = 40

	return &GameModel{
		seat:   seat,
		submit: submit,
		screen: ScreenTable,
		input:  ti,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		log:    viewport.New(80, logHeight),
	}
}

func (m *GameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Screen returns the current screen.
func (m *GameModel) Screen() Screen { return m.screen }

// Prompt returns the pending prompt, or nil.
func (m *GameModel) Prompt() *game.Prompt { return m.prompt }

// History returns the message log.
func (m *GameModel) History() []string { return m.history }

// Result returns the final result once the game is over.
func (m *GameModel) Result() *game.Result { return m.result }

// Err returns the error the game ended with, if any.
func (m *GameModel) Err() error { return m.err }

// Update handles tea messages.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Width = msg.Width
		m.help.Width = msg.Width

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)

	case PromptMsg:
		p := msg.Prompt
		m.prompt = &p
		m.input.Reset()
		m.input.Placeholder = view.PromptHint(p)
		cmds = append(cmds, m.input.Focus())
		if m.screen == ScreenTable {
			m.screen = ScreenInput
		} else if m.screen == ScreenRules {
			m.previous = ScreenInput
		}

	case GameDoneMsg:
		m.prompt = nil
		m.input.Blur()
		m.err = msg.Err
		if msg.Err == nil {
			res := msg.Result
			m.result = &res
		}
		m.screen = ScreenGameOver

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *GameModel) applySnapshot(s game.Snapshot) {
	m.snapshot = &s
	if s.Result != nil {
		res := *s.Result
		m.result = &res
	}
	if s.Message == "" {
		return
	}
	if n := len(m.history); n > 0 && m.history[n-1] == s.Message {
		return
	}
	m.history = append(m.history, s.Message)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.log.SetContent(strings.Join(m.history, "\n"))
	m.log.GotoBottom()
}

// handleKey handles keyboard input and returns whether it was consumed.
func (m *GameModel) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return true, tea.Quit
	}

	switch m.screen {
	case ScreenGameOver:
		// 任意键退出
		return true, tea.Quit

	case ScreenRules:
		if key.Matches(msg, m.keys.Help) {
			m.screen = m.previous
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		m.previous = m.screen
		m.screen = ScreenRules
		return true, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return true, cmd

	case key.Matches(msg, m.keys.Submit):
		return true, m.submitInput()
	}

	return false, nil
}

func (m *GameModel) submitInput() tea.Cmd {
	if m.prompt == nil {
		return nil
	}
	token := strings.TrimSpace(m.input.Value())
	if token == "" {
		return nil
	}

	m.prompt = nil
	m.input.Reset()
	m.input.Placeholder = "waiting for the opponent..."
	m.screen = ScreenTable
	if m.submit != nil {
		m.submit(token)
	}
	return nil
}

// View renders the model.
func (m *GameModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.screen {
	case ScreenRules:
		content = view.RulesView(m.width, m.height)
	case ScreenGameOver:
		content = m.gameOverView()
	default:
		content = m.tableView()
	}

	return common.DocStyle.Render(content)
}

func (m *GameModel) tableView() string {
	var sb strings.Builder

	if m.snapshot == nil {
		sb.WriteString("Shuffling...\n")
	} else {
		sb.WriteString(view.TableView(*m.snapshot, m.seat, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString(common.BoxStyle.Width(max(m.width-6, 20)).Render(m.log.View()))
	sb.WriteString("\n")

	if m.prompt != nil {
		if m.prompt.Error != nil {
			sb.WriteString(common.ErrorStyle.Render("✗ " + m.prompt.Error.Error()))
			sb.WriteString("\n")
		}
		if len(m.prompt.Self.Hand) > 0 {
			sb.WriteString(common.RenderCardRow(m.prompt.Self.Hand, true))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(common.PromptStyle.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m *GameModel) gameOverView() string {
	var body string
	switch {
	case m.err != nil:
		body = common.ErrorStyle.Render("Game aborted: " + m.err.Error())
	case m.result != nil:
		body = view.GameOverView(*m.result, m.width)
	default:
		body = "Game over"
	}
	hint := common.HintStyle.Render("Press any key to exit")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body+"\n\n"+hint)
}
