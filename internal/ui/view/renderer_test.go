package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
)

func c(s card.Suit, r card.Rank) card.Card { return card.New(s, r) }

func sampleSnapshot() game.Snapshot {
	reveal := c(card.Diamonds, card.Rank9)
	king := c(card.Clubs, card.RankK)

	s := game.Snapshot{
		MatchID: "m-1",
		Round:   4,
		Phase:   game.PhaseDuel,
		Acting:  1,
		Reveal:  &reveal,
		Pile: []duel.PileEntry{
			{Player: 0, Play: duel.SingleCard{Card: c(card.Diamonds, card.RankQ)}},
		},
		AsideKing:   &king,
		DeckSize:    30,
		DiscardSize: 4,
		Message:     "Alice wins the duel",
	}
	s.Players[0] = game.PlayerState{Seat: 0, Name: "Alice", HandSize: 2,
		Hand: []card.Card{c(card.Hearts, card.Rank10), c(card.Spades, card.Rank3)}}
	s.Players[0].Armies[card.Hearts] = []card.Card{c(card.Hearts, card.Rank7)}
	s.Players[1] = game.PlayerState{Seat: 1, Name: "Bob", HandSize: 3,
		Hand: []card.Card{c(card.Clubs, card.Rank2), c(card.Clubs, card.Rank4), c(card.Clubs, card.Rank5)}}
	return s
}

func TestTableView(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot()

	t.Run("own plays face up", func(t *testing.T) {
		t.Parallel()
		out := TableView(s, 0, 100)
		assert.Contains(t, out, "Alice")
		assert.Contains(t, out, "Bob")
		assert.Contains(t, out, "round 4")
		assert.Contains(t, out, "Alice: Q♦")
		assert.Contains(t, out, "K♣")
		assert.Contains(t, out, "7♥")
		assert.Contains(t, out, "Alice wins the duel")
	})

	t.Run("opponent plays face down", func(t *testing.T) {
		t.Parallel()
		out := TableView(s, 1, 100)
		assert.NotContains(t, out, "Q♦")
		assert.Contains(t, out, "Alice: ▒▒")
	})

	t.Run("spectator sees everything", func(t *testing.T) {
		t.Parallel()
		out := TableView(s, Spectator, 100)
		assert.Contains(t, out, "Alice: Q♦")
	})
}

func TestTextView(t *testing.T) {
	t.Parallel()

	out := TextView(sampleSnapshot(), Spectator)

	assert.Contains(t, out, "round 4 · duel")
	assert.Contains(t, out, "reveal: 9♦")
	assert.Contains(t, out, "aside: K♣")
	assert.Contains(t, out, "pile: Alice: Q♦")
	assert.Contains(t, out, "deck 30 · discard 4")
	assert.Contains(t, out, "Bob  hand 3")
}

func TestPromptHint(t *testing.T) {
	t.Parallel()

	reveal := c(card.Hearts, card.Rank6)
	tests := []struct {
		name   string
		prompt game.Prompt
		want   string
	}{
		{"war phase", game.Prompt{}, "war <suit> [<suit> ...] | pass"},
		{"first play", game.Prompt{Reveal: &reveal}, "play <i> | wild <k> <c> | concede"},
		{"answer", game.Prompt{Reveal: &reveal, Pile: []duel.PileEntry{{}}}, "play <i> | wild <k> <c> | call | concede"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PromptHint(tt.prompt))
		})
	}
}

func TestPromptView(t *testing.T) {
	t.Parallel()

	reveal := c(card.Hearts, card.Rank6)
	p := game.Prompt{
		Self:   game.PlayerState{Name: "Alice"},
		Reveal: &reveal,
		Error:  fmt.Errorf("play 7: %w", apperrors.ErrInvalidIndex),
	}

	out := PromptView(p)
	assert.Contains(t, out, "✗ play 7")
	assert.Contains(t, out, "reveal: 6♥")
	assert.Contains(t, out, "(no cards in hand)")
	assert.Contains(t, out, "Alice: play <i>")
}

func TestGameOverView(t *testing.T) {
	t.Parallel()

	res := game.Result{Winner: 1, Reason: game.ReasonVictory, Rounds: 12}
	res.Players[0] = game.PlayerStats{Name: "Alice", DuelsWon: 5}
	res.Players[1] = game.PlayerStats{Name: "Bob", DuelsWon: 7, WarsDeclared: 2, WarsWon: 1, ArmyCards: 15}

	out := GameOverView(res, 80)
	assert.Contains(t, out, "Bob wins!")
	assert.Contains(t, out, "rounds: 12")
	assert.Contains(t, out, "wars 1/2")

	res.Winner = -1
	res.Reason = game.ReasonDeckExhausted
	assert.Contains(t, GameOverView(res, 80), "Game over (deck_exhausted)")
}
