package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	original := card.New(card.Hearts, card.Rank10)

	info := CardToInfo(original)
	assert.Equal(t, "10♥", info.Text)
	assert.Equal(t, original, InfoToCard(info))
}

func TestCardsRoundTrip(t *testing.T) {
	t.Parallel()

	originals := []card.Card{
		card.New(card.Spades, card.Rank3),
		card.New(card.Diamonds, card.RankQ),
		card.New(card.Clubs, card.RankK),
	}

	results := InfosToCards(CardsToInfos(originals))

	require.Len(t, results, len(originals))
	for i, orig := range originals {
		assert.Equal(t, orig, results[i], "Mismatch at index %d", i)
	}
}

func TestCardPtr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CardPtrToInfo(nil))
	assert.Nil(t, InfoPtrToCard(nil))

	c := card.New(card.Clubs, card.RankA)
	info := CardPtrToInfo(&c)
	require.NotNil(t, info)
	assert.Equal(t, &c, InfoPtrToCard(info))
}

func TestEmptyCards(t *testing.T) {
	t.Parallel()

	assert.Empty(t, CardsToInfos([]card.Card{}))
	assert.Empty(t, InfosToCards([]protocol.CardInfo{}))
}
