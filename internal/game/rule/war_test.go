package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
	"github.com/palemoky/king-of-montenegro/internal/game/table"
)

func c(s card.Suit, r card.Rank) card.Card { return card.New(s, r) }

// newWarTable 构造一个空牌堆的牌桌；手牌不足 3 张时补牌会回收弃牌堆
func newWarTable() *table.Table {
	p0 := player.New("Attacker")
	p1 := player.New("Defender")
	return table.New(card.NewStackedDeck(nil), p0, p1)
}

func TestResolveWar_RejectedWithoutArmies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		attackerArmy bool
		defenderArmy bool
	}{
		{"defender has no army", true, false},
		{"attacker has no army", false, true},
		{"nobody has an army", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tb := newWarTable()
			att, def := tb.Players[0], tb.Players[1]
			att.Hand = []card.Card{c(card.Hearts, card.Rank2), c(card.Hearts, card.Rank3), c(card.Clubs, card.Rank4)}
			def.Hand = []card.Card{c(card.Spades, card.Rank2), c(card.Spades, card.Rank3), c(card.Clubs, card.Rank5)}
			if tt.attackerArmy {
				att.Enlist(card.Hearts, c(card.Hearts, card.RankA))
			}
			if tt.defenderArmy {
				def.Enlist(card.Hearts, c(card.Hearts, card.RankQ))
			}
			beforeAtt, beforeDef := *att, *def
			beforeAtt.Hand = append([]card.Card(nil), att.Hand...)
			beforeDef.Hand = append([]card.Card(nil), def.Hand...)

			_, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Hearts})

			require.ErrorIs(t, err, apperrors.ErrWarUnavailable)
			assert.Equal(t, beforeAtt, *att)
			assert.Equal(t, beforeDef, *def)
			assert.Empty(t, tb.Discard)
		})
	}
}

func TestResolveWar_AttackerWins(t *testing.T) {
	t.Parallel()

	tb := newWarTable()
	att, def := tb.Players[0], tb.Players[1]
	att.Enlist(card.Hearts, c(card.Hearts, card.RankA))
	att.Hand = []card.Card{c(card.Hearts, card.Rank2), c(card.Hearts, card.Rank3), c(card.Clubs, card.Rank4)}
	def.Enlist(card.Hearts, c(card.Hearts, card.RankQ), c(card.Hearts, card.RankJ))
	def.Hand = []card.Card{c(card.Spades, card.Rank2), c(card.Spades, card.Rank3), c(card.Clubs, card.Rank5)}

	result, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Hearts})
	require.NoError(t, err)

	assert.Equal(t, 3, result.AttackTotal) // 1 army + 2 in hand
	assert.Equal(t, 2, result.DefendTotal) // 2 army + 0 in hand
	assert.True(t, result.AttackerWon())
	assert.False(t, def.HasArmy(card.Hearts))
	assert.True(t, att.HasArmy(card.Hearts), "winner keeps the army")
	assert.ElementsMatch(t, []card.Card{c(card.Hearts, card.RankQ), c(card.Hearts, card.RankJ)}, tb.Discard)
}

func TestResolveWar_TieGoesToDefender(t *testing.T) {
	t.Parallel()

	tb := newWarTable()
	att, def := tb.Players[0], tb.Players[1]
	att.Enlist(card.Clubs, c(card.Clubs, card.Rank9))
	def.Enlist(card.Clubs, c(card.Clubs, card.Rank8))

	result, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Clubs})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Winner)
	assert.False(t, att.HasArmy(card.Clubs))
	assert.True(t, def.HasArmy(card.Clubs))
}

func TestResolveWar_FailedReinforcementsAreLost(t *testing.T) {
	t.Parallel()

	tb := newWarTable()
	att, def := tb.Players[0], tb.Players[1]
	att.Enlist(card.Spades, c(card.Spades, card.Rank5))
	att.Enlist(card.Diamonds, c(card.Diamonds, card.Rank2), c(card.Diamonds, card.Rank3), c(card.Diamonds, card.Rank4))
	att.Enlist(card.Hearts, c(card.Hearts, card.Rank7))
	att.Hand = []card.Card{c(card.Diamonds, card.Rank9), c(card.Clubs, card.Rank2), c(card.Clubs, card.Rank3)}
	def.Enlist(card.Spades, c(card.Spades, card.Rank6), c(card.Spades, card.Rank7))
	def.Hand = []card.Card{c(card.Hearts, card.Rank2), c(card.Hearts, card.Rank3), c(card.Clubs, card.Rank5)}

	// attack = 1 + 0 + (1 - 3) = -1, defend = 2
	result, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Spades, Reinforcements: []card.Suit{card.Diamonds}})
	require.NoError(t, err)

	assert.Equal(t, -1, result.AttackTotal)
	assert.Equal(t, 2, result.DefendTotal)
	assert.Equal(t, 1, result.Winner)
	assert.False(t, att.HasArmy(card.Spades))
	assert.False(t, att.HasArmy(card.Diamonds))
	assert.True(t, att.HasArmy(card.Hearts), "non-reinforcing suits are untouched")
	lost := []card.Card{
		c(card.Spades, card.Rank5),
		c(card.Diamonds, card.Rank2), c(card.Diamonds, card.Rank3), c(card.Diamonds, card.Rank4),
	}
	assert.ElementsMatch(t, lost, result.Discarded)
	assert.ElementsMatch(t, lost, tb.Discard, "full hands draw nothing back")
}

func TestResolveWar_RefillRecyclesDiscard(t *testing.T) {
	t.Parallel()

	tb := newWarTable()
	att, def := tb.Players[0], tb.Players[1]
	att.Enlist(card.Spades, c(card.Spades, card.Rank5))
	att.Enlist(card.Diamonds, c(card.Diamonds, card.Rank2), c(card.Diamonds, card.Rank3), c(card.Diamonds, card.Rank4))
	att.Hand = []card.Card{c(card.Diamonds, card.Rank9), c(card.Clubs, card.Rank2), c(card.Clubs, card.Rank3)}
	def.Enlist(card.Spades, c(card.Spades, card.Rank6), c(card.Spades, card.Rank7))

	result, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Spades, Reinforcements: []card.Suit{card.Diamonds}})
	require.NoError(t, err)

	// 牌堆为空，防守方从回收的 4 张弃牌中补到 3 张，剩 1 张回到牌堆
	assert.Len(t, result.Discarded, 4)
	assert.Len(t, def.Hand, 3)
	assert.Empty(t, tb.Discard)
	assert.Equal(t, 1, tb.Deck.Len())
}

func TestResolveWar_ReinforcementsCanTipTheBalance(t *testing.T) {
	t.Parallel()

	tb := newWarTable()
	att, def := tb.Players[0], tb.Players[1]
	att.Enlist(card.Spades, c(card.Spades, card.Rank5))
	att.Hand = []card.Card{c(card.Clubs, card.Rank2), c(card.Clubs, card.Rank3), c(card.Clubs, card.Rank4)}
	def.Enlist(card.Spades, c(card.Spades, card.Rank6), c(card.Spades, card.Rank7))

	// attack = 1 + 0 + (3 - 0) = 4 > 2
	result, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Spades, Reinforcements: []card.Suit{card.Clubs}})
	require.NoError(t, err)
	assert.True(t, result.AttackerWon())
	assert.Equal(t, 4, result.AttackTotal)
}

func TestResolveWar_MaintainsHands(t *testing.T) {
	t.Parallel()

	p0 := player.New("Attacker")
	p1 := player.New("Defender")
	tb := table.New(card.NewStackedDeck(nil,
		c(card.Diamonds, card.Rank2), c(card.Diamonds, card.Rank3), c(card.Diamonds, card.Rank4)), p0, p1)
	p0.Enlist(card.Clubs, c(card.Clubs, card.Rank9))
	p1.Enlist(card.Clubs, c(card.Clubs, card.Rank8))

	_, err := ResolveWar(tb, WarDeclaration{Attacker: 0, Suit: card.Clubs})
	require.NoError(t, err)

	assert.Len(t, p0.Hand, 3)
	assert.Len(t, p1.Hand, 1, "the discarded army is recycled once the deck runs out")
	assert.Equal(t, 5, tb.Total())
}
