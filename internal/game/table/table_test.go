package table

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
)

func newTable(deck *card.Deck) *Table {
	return New(deck, player.New("Player 1"), player.New("Player 2"))
}

func TestTable_Deal(t *testing.T) {
	t.Parallel()

	tb := newTable(card.NewDeck(rand.New(rand.NewPCG(1, 1))))
	tb.Deal()

	assert.Len(t, tb.Players[0].Hand, HandSize)
	assert.Len(t, tb.Players[1].Hand, HandSize)
	assert.Equal(t, card.DeckSize-2*HandSize, tb.Deck.Len())
	assert.Equal(t, card.DeckSize, tb.Total())
}

func TestTable_DrawRecyclesDiscard(t *testing.T) {
	t.Parallel()

	tb := newTable(card.NewStackedDeck(rand.New(rand.NewPCG(3, 4))))
	tb.DiscardCards(card.New(card.Spades, card.Rank2), card.New(card.Hearts, card.Rank3))

	c, ok := tb.Draw()
	require.True(t, ok)
	assert.Contains(t, []card.Card{card.New(card.Spades, card.Rank2), card.New(card.Hearts, card.Rank3)}, c)
	assert.Empty(t, tb.Discard)
	assert.Equal(t, 1, tb.Deck.Len())

	_, ok = tb.Draw()
	require.True(t, ok)
	_, ok = tb.Draw()
	assert.False(t, ok, "deck and discard both empty")
}

func TestTable_MaintainHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deck     int
		discard  int
		expected [2]int
	}{
		{"plenty", 10, 0, [2]int{3, 3}},
		{"only discard", 0, 6, [2]int{3, 3}},
		{"short supply favours seat order", 2, 2, [2]int{3, 1}},
		{"nothing left", 0, 0, [2]int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			all := card.NewDeck(rand.New(rand.NewPCG(9, 9))).Cards()
			tb := newTable(card.NewStackedDeck(nil, all[:tt.deck]...))
			tb.DiscardCards(all[tt.deck : tt.deck+tt.discard]...)

			tb.MaintainHands()

			assert.Len(t, tb.Players[0].Hand, tt.expected[0])
			assert.Len(t, tb.Players[1].Hand, tt.expected[1])
			assert.Equal(t, tt.deck+tt.discard, tb.Total())
		})
	}
}

func TestTable_HasObtainable(t *testing.T) {
	t.Parallel()

	tb := newTable(card.NewStackedDeck(nil, card.New(card.Clubs, card.RankK)))
	tb.DiscardCards(card.New(card.Hearts, card.RankK))

	notKing := func(c card.Card) bool { return !c.IsKing() }
	assert.False(t, tb.HasObtainable(notKing))

	tb.DiscardCards(card.New(card.Hearts, card.Rank4))
	assert.True(t, tb.HasObtainable(notKing))
	assert.Equal(t, 3, tb.Obtainable())
}

func TestOpponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Opponent(0))
	assert.Equal(t, 0, Opponent(1))
}
