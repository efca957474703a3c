package duel

import "github.com/palemoky/king-of-montenegro/internal/game/card"

// Play 出牌堆中的一手：SingleCard 或 KingPair
type Play interface {
	// Cards 展开为具体的牌，KingPair 先 K 后牌
	Cards() []card.Card
	// Played 被用来比较大小的那张牌
	Played() card.Card
	isPlay()
}

// SingleCard 普通出牌
type SingleCard struct {
	Card card.Card
}

func (p SingleCard) Cards() []card.Card { return []card.Card{p.Card} }
func (p SingleCard) Played() card.Card  { return p.Card }
func (SingleCard) isPlay()              {}

func (p SingleCard) String() string { return p.Card.String() }

// KingPair wild 出牌：一张 K 加一张牌
type KingPair struct {
	King card.Card
	Card card.Card
}

func (p KingPair) Cards() []card.Card { return []card.Card{p.King, p.Card} }
func (p KingPair) Played() card.Card  { return p.Card }
func (KingPair) isPlay()              {}

func (p KingPair) String() string { return p.King.String() + "+" + p.Card.String() }

// PileEntry 出牌记录
type PileEntry struct {
	Player int
	Play   Play
}

// Unwrap 展开整个出牌堆
func Unwrap(pile []PileEntry) []card.Card {
	var cards []card.Card
	for _, e := range pile {
		cards = append(cards, e.Play.Cards()...)
	}
	return cards
}
