package model

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

func newSizedModel(t *testing.T, submit func(string)) *GameModel {
	t.Helper()
	m := NewGameModel(0, submit)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func duelPrompt() game.Prompt {
	reveal := card.New(card.Hearts, card.Rank7)
	return game.Prompt{
		Round:    1,
		Self:     game.PlayerState{Seat: 0, Name: "Alice", Hand: []card.Card{card.New(card.Hearts, card.Rank9)}, HandSize: 1},
		Opponent: game.PlayerState{Seat: 1, Name: "Bob", HandSize: 6},
		Reveal:   &reveal,
	}
}

func typeText(m *GameModel, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewGameModel(t *testing.T) {
	t.Parallel()

	m := NewGameModel(1, nil)
	assert.Equal(t, ScreenTable, m.Screen())
	assert.Nil(t, m.Prompt())
	assert.Nil(t, m.Result())
	assert.Empty(t, m.History())
	assert.Equal(t, "Loading...", m.View())
}

func TestGameModel_PromptAndSubmit(t *testing.T) {
	t.Parallel()

	var submitted []string
	m := newSizedModel(t, func(s string) { submitted = append(submitted, s) })

	m.Update(PromptMsg{Prompt: duelPrompt()})
	require.NotNil(t, m.Prompt())
	assert.Equal(t, ScreenInput, m.Screen())
	assert.Contains(t, m.View(), "play <i>")

	typeText(m, "play 0")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"play 0"}, submitted)
	assert.Nil(t, m.Prompt())
	assert.Equal(t, ScreenTable, m.Screen())
}

func TestGameModel_EnterWithoutPrompt(t *testing.T) {
	t.Parallel()

	called := false
	m := newSizedModel(t, func(string) { called = true })

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, called)

	// 空输入不提交
	m.Update(PromptMsg{Prompt: duelPrompt()})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, called)
	assert.NotNil(t, m.Prompt())
}

func TestGameModel_PromptError(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	p := duelPrompt()
	p.Error = errors.New("index out of range")
	m.Update(PromptMsg{Prompt: p})

	assert.Contains(t, m.View(), "index out of range")
}

func TestGameModel_RulesToggle(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	m.Update(PromptMsg{Prompt: duelPrompt()})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'H'}})
	assert.Equal(t, ScreenRules, m.Screen())
	assert.Contains(t, m.View(), "Rules")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	assert.Equal(t, ScreenInput, m.Screen())
}

func TestGameModel_HelpKeyWhileTyping(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	p := duelPrompt()
	p.Reveal = nil
	m.Update(PromptMsg{Prompt: p})

	typeText(m, "war hearts")
	assert.Equal(t, ScreenInput, m.Screen())
}

func TestGameModel_SnapshotHistory(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	s := game.Snapshot{MatchID: "m", Round: 1, Phase: game.PhaseWar}
	s.Players[0] = game.PlayerState{Seat: 0, Name: "Alice"}
	s.Players[1] = game.PlayerState{Seat: 1, Name: "Bob"}

	s.Message = "Alice wins the duel"
	m.Update(SnapshotMsg{Snapshot: s})
	m.Update(SnapshotMsg{Snapshot: s})
	s.Message = "Bob wins the war for hearts (9 vs 4)"
	m.Update(SnapshotMsg{Snapshot: s})

	assert.Equal(t, []string{"Alice wins the duel", "Bob wins the war for hearts (9 vs 4)"}, m.History())
	assert.Contains(t, m.View(), "Alice")
}

func TestGameModel_GameOver(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	m.Update(PromptMsg{Prompt: duelPrompt()})

	res := game.Result{
		MatchID: "m",
		Winner:  1,
		Reason:  game.ReasonVictory,
		Rounds:  12,
		Players: [2]game.PlayerStats{{Name: "Alice"}, {Name: "Bob"}},
	}
	m.Update(GameDoneMsg{Result: res})

	assert.Equal(t, ScreenGameOver, m.Screen())
	assert.Nil(t, m.Prompt())
	require.NotNil(t, m.Result())
	assert.Contains(t, m.View(), "Bob wins!")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGameModel_GameAborted(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	m.Update(GameDoneMsg{Err: errors.New("boom")})

	assert.Equal(t, ScreenGameOver, m.Screen())
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "boom")
}

func TestGameModel_Quit(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
