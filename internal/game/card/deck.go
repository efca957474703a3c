package card

import "math/rand/v2"

// DeckSize 一副牌的张数
const DeckSize = 52

// Deck 定义一副牌，牌顶在切片末尾
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck 创建并洗好一副 52 张的牌，rng 为空时使用全局随机源
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	for _, s := range Suits {
		for r := Rank2; r <= RankA; r++ {
			d.cards = append(d.cards, Card{Suit: s, Rank: r})
		}
	}
	d.Shuffle()
	return d
}

// NewStackedDeck 按给定顺序创建牌堆（最后一张最先被摸到），不洗牌
func NewStackedDeck(rng *rand.Rand, cards ...Card) *Deck {
	return &Deck{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
}

// Shuffle 洗牌
func (d *Deck) Shuffle() {
	swap := func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	if d.rng != nil {
		d.rng.Shuffle(len(d.cards), swap)
		return
	}
	rand.Shuffle(len(d.cards), swap)
}

// Draw 从牌顶摸一张牌，牌堆为空时 ok 为 false
func (d *Deck) Draw() (Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, false
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

// AddCards 加入牌并重新洗整副牌
func (d *Deck) AddCards(cards ...Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Len 剩余张数
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards 返回剩余牌的副本
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
