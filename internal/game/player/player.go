// Package player 玩家的手牌与各花色军队
package player

import (
	"fmt"
	"slices"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

// DrawFunc 摸牌函数，牌源耗尽时 ok 为 false
type DrawFunc func() (c card.Card, ok bool)

// Armies 花色 → 已赢得的牌，四个花色始终存在
type Armies [card.NumSuits][]card.Card

// Player 定义玩家
type Player struct {
	Name   string
	Hand   []card.Card // 顺序即出牌索引顺序
	Armies Armies
}

// New 创建玩家，手牌和军队为空
func New(name string) *Player {
	return &Player{Name: name}
}

// Draw 最多调用 n 次 draw，把摸到的牌加入手牌，返回摸到的张数
func (p *Player) Draw(draw DrawFunc, n int) int {
	drawn := 0
	for range n {
		c, ok := draw()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, c)
		drawn++
	}
	return drawn
}

// RemoveCard 移除并返回手牌中 index 位置的牌
func (p *Player) RemoveCard(index int) (card.Card, error) {
	if index < 0 || index >= len(p.Hand) {
		return card.Card{}, fmt.Errorf("index %d of %d cards: %w", index, len(p.Hand), apperrors.ErrInvalidIndex)
	}
	c := p.Hand[index]
	p.Hand = slices.Delete(p.Hand, index, index+1)
	return c, nil
}

// InsertCard 把牌放回手牌 index 位置，index 越界时追加到末尾
func (p *Player) InsertCard(index int, c card.Card) {
	index = max(0, min(index, len(p.Hand)))
	p.Hand = slices.Insert(p.Hand, index, c)
}

// CountInHand 手牌中某花色的张数
func (p *Player) CountInHand(s card.Suit) int {
	n := 0
	for _, c := range p.Hand {
		if c.Suit == s {
			n++
		}
	}
	return n
}

// Army 返回某花色军队的副本
func (p *Player) Army(s card.Suit) []card.Card {
	return slices.Clone(p.Armies[s])
}

// ArmySize 某花色军队的张数
func (p *Player) ArmySize(s card.Suit) int {
	return len(p.Armies[s])
}

// HasArmy 是否已占有该花色
func (p *Player) HasArmy(s card.Suit) bool {
	return len(p.Armies[s]) > 0
}

// Enlist 把牌加入某花色的军队
func (p *Player) Enlist(s card.Suit, cards ...card.Card) {
	p.Armies[s] = append(p.Armies[s], cards...)
}

// Disband 清空某花色军队并返回被移除的牌
func (p *Player) Disband(s card.Suit) []card.Card {
	lost := p.Armies[s]
	p.Armies[s] = nil
	return lost
}

// ArmyTotal 所有军队的总张数
func (p *Player) ArmyTotal() int {
	n := 0
	for _, army := range p.Armies {
		n += len(army)
	}
	return n
}
