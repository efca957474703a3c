// Package table 牌桌：牌堆、弃牌堆与两名玩家
package table

import (
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
)

// HandSize 手牌上限
const HandSize = 3

// Table 牌桌状态，只由对局循环所在的协程访问
type Table struct {
	Deck    *card.Deck
	Discard []card.Card
	Players [2]*player.Player
	Turn    int // 当前行动玩家
}

// New 创建牌桌
func New(deck *card.Deck, p0, p1 *player.Player) *Table {
	return &Table{
		Deck:    deck,
		Players: [2]*player.Player{p0, p1},
	}
}

// Opponent 返回对手索引
func Opponent(idx int) int {
	return 1 - idx
}

// Deal 开局每人摸 HandSize 张
func (t *Table) Deal() {
	for _, p := range t.Players {
		p.Draw(t.Draw, HandSize)
	}
}

// Draw 摸牌；牌堆为空时把弃牌堆洗回牌堆再摸
func (t *Table) Draw() (card.Card, bool) {
	if c, ok := t.Deck.Draw(); ok {
		return c, true
	}
	if len(t.Discard) == 0 {
		return card.Card{}, false
	}
	t.Deck.AddCards(t.Discard...)
	t.Discard = nil
	return t.Deck.Draw()
}

// Obtainable 牌堆与弃牌堆中可摸到的牌数
func (t *Table) Obtainable() int {
	return t.Deck.Len() + len(t.Discard)
}

// HasObtainable 牌堆或弃牌堆中是否还有满足条件的牌
func (t *Table) HasObtainable(match func(card.Card) bool) bool {
	for _, c := range t.Deck.Cards() {
		if match(c) {
			return true
		}
	}
	for _, c := range t.Discard {
		if match(c) {
			return true
		}
	}
	return false
}

// MaintainHands 按座位顺序把每位玩家的手牌补到 HandSize 张
func (t *Table) MaintainHands() {
	for _, p := range t.Players {
		if missing := HandSize - len(p.Hand); missing > 0 {
			p.Draw(t.Draw, missing)
		}
	}
}

// DiscardCards 把牌放入弃牌堆
func (t *Table) DiscardCards(cards ...card.Card) {
	t.Discard = append(t.Discard, cards...)
}

// Total 牌堆、手牌、军队与弃牌堆的总张数，对局之间恒为 52
func (t *Table) Total() int {
	n := t.Deck.Len() + len(t.Discard)
	for _, p := range t.Players {
		n += len(p.Hand) + p.ArmyTotal()
	}
	return n
}

// AllCards 列出牌桌上的所有牌，用于守恒检查
func (t *Table) AllCards() []card.Card {
	cards := t.Deck.Cards()
	cards = append(cards, t.Discard...)
	for _, p := range t.Players {
		cards = append(cards, p.Hand...)
		for _, army := range p.Armies {
			cards = append(cards, army...)
		}
	}
	return cards
}
