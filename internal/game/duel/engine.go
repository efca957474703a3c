// Package duel 单轮决斗状态机：翻牌、轮流出牌、call 与 concede 的裁决
package duel

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/rule"
	"github.com/palemoky/king-of-montenegro/internal/game/table"
)

// State 决斗状态
type State int

const (
	StateRevealing State = iota
	StateTurn
	StateResolved
)

var stateNames = map[State]string{
	StateRevealing: "revealing",
	StateTurn:      "turn",
	StateResolved:  "resolved",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrNotInTurn 决斗不在等待动作的状态
var ErrNotInTurn = errors.New("duel is not awaiting an action")

// Outcome 决斗结果
type Outcome struct {
	Winner       int
	ByConcession bool
	CallValid    bool        // call 时被质疑的出牌是否成立
	Awarded      []card.Card // 进入胜者军队的牌
	Discarded    []card.Card // 进入弃牌堆的牌
}

// Engine 一轮决斗
type Engine struct {
	table     *table.Table
	state     State
	reveal    card.Card
	asideKing *card.Card
	pile      []PileEntry
	acting    int
	outcome   Outcome
}

// New 创建决斗，由牌桌当前回合的玩家先行动
func New(t *table.Table) *Engine {
	return &Engine{
		table:  t,
		state:  StateRevealing,
		acting: t.Turn,
	}
}

// Reveal 连续摸牌直到翻出一张非 K 的牌。
// 途中摸到的 K 放到一旁，后摸到的 K 替换先前的 K，被替换的进入弃牌堆。
// 牌源中已没有非 K 的牌时返回 ErrDeckExhausted。
func (e *Engine) Reveal() error {
	if e.state != StateRevealing {
		return ErrNotInTurn
	}
	if !e.table.HasObtainable(func(c card.Card) bool { return !c.IsKing() }) {
		return apperrors.ErrDeckExhausted
	}

	for {
		c, ok := e.table.Draw()
		if !ok {
			e.setAside(nil)
			return apperrors.ErrDeckExhausted
		}
		if c.IsKing() {
			e.setAside(&c)
			continue
		}
		e.reveal = c
		break
	}

	e.state = StateTurn
	log.Debug().Str("reveal", e.reveal.String()).Bool("aside_king", e.asideKing != nil).Msg("duel revealed")
	return nil
}

func (e *Engine) setAside(king *card.Card) {
	if e.asideKing != nil {
		e.table.DiscardCards(*e.asideKing)
	}
	e.asideKing = king
}

// Apply 执行当前行动玩家的动作；可恢复的错误不修改任何状态
func (e *Engine) Apply(a rule.Action) error {
	if e.state != StateTurn {
		return ErrNotInTurn
	}

	switch a.Kind {
	case rule.Play:
		return e.play(a.Index)
	case rule.Wild:
		return e.wild(a.KingIndex, a.CardIndex)
	case rule.Call:
		return e.call()
	case rule.Concede:
		e.concede()
		return nil
	default:
		return fmt.Errorf("%q during a duel: %w", a.String(), apperrors.ErrUnrecognizedAction)
	}
}

func (e *Engine) play(index int) error {
	p := e.table.Players[e.acting]
	c, err := p.RemoveCard(index)
	if err != nil {
		return err
	}
	e.push(SingleCard{Card: c})
	return nil
}

func (e *Engine) wild(kingIndex, cardIndex int) error {
	p := e.table.Players[e.acting]

	king, err := p.RemoveCard(kingIndex)
	if err != nil {
		return err
	}
	if !king.IsKing() {
		p.InsertCard(kingIndex, king)
		return fmt.Errorf("%s: %w", king, apperrors.ErrInvalidKing)
	}

	// 第一次移除后，后面的牌整体前移一位
	if cardIndex > kingIndex {
		cardIndex--
	}
	c, err := p.RemoveCard(cardIndex)
	if err != nil {
		p.InsertCard(kingIndex, king)
		return err
	}

	e.push(KingPair{King: king, Card: c})
	return nil
}

func (e *Engine) push(play Play) {
	e.pile = append(e.pile, PileEntry{Player: e.acting, Play: play})
	e.table.MaintainHands()
	e.acting = table.Opponent(e.acting)
	e.table.Turn = e.acting
}

func (e *Engine) call() error {
	if len(e.pile) == 0 {
		return apperrors.ErrEmptyPile
	}

	last := e.pile[len(e.pile)-1]
	var valid bool
	var king *card.Card
	switch p := last.Play.(type) {
	case KingPair:
		valid = p.Card.Suit == e.reveal.Suit && p.Card.Value() > e.reveal.Value()
		king = &p.King
	case SingleCard:
		valid = p.Card.Beats(e.reveal)
	}
	played := last.Play.Played()

	winner := table.Opponent(last.Player)
	if valid {
		winner = last.Player
	}
	w := e.table.Players[winner]

	out := Outcome{Winner: winner, CallValid: valid}
	award := func(s card.Suit, c card.Card) {
		w.Enlist(s, c)
		out.Awarded = append(out.Awarded, c)
	}

	award(e.reveal.Suit, e.reveal)
	if bonus, ok := e.table.Draw(); ok {
		award(e.reveal.Suit, bonus)
	}
	if e.asideKing != nil {
		award(e.reveal.Suit, *e.asideKing)
	}

	if winner == last.Player {
		award(played.Suit, played)
		if king != nil {
			award(king.Suit, *king)
		}
	} else {
		out.Discarded = append(out.Discarded, last.Play.Cards()...)
	}
	out.Discarded = append(out.Discarded, Unwrap(e.pile[:len(e.pile)-1])...)

	e.resolve(out)
	return nil
}

func (e *Engine) concede() {
	winner := table.Opponent(e.acting)
	w := e.table.Players[winner]

	out := Outcome{Winner: winner, ByConcession: true}
	out.Awarded = append(out.Awarded, e.reveal)
	if e.asideKing != nil {
		out.Awarded = append(out.Awarded, *e.asideKing)
	}
	w.Enlist(e.reveal.Suit, out.Awarded...)
	out.Discarded = Unwrap(e.pile)

	e.resolve(out)
}

func (e *Engine) resolve(out Outcome) {
	e.table.DiscardCards(out.Discarded...)
	e.pile = nil
	e.asideKing = nil
	e.outcome = out
	e.acting = out.Winner
	e.table.Turn = out.Winner
	e.table.MaintainHands()
	e.state = StateResolved

	log.Debug().
		Int("winner", out.Winner).
		Bool("concession", out.ByConcession).
		Int("awarded", len(out.Awarded)).
		Int("discarded", len(out.Discarded)).
		Msg("duel resolved")
}

// State 当前状态
func (e *Engine) State() State { return e.state }

// Acting 当前行动玩家
func (e *Engine) Acting() int { return e.acting }

// RevealCard 本轮争夺的牌，翻牌完成前 ok 为 false
func (e *Engine) RevealCard() (card.Card, bool) {
	return e.reveal, e.state != StateRevealing
}

// AsideKing 放在一旁的 K
func (e *Engine) AsideKing() (card.Card, bool) {
	if e.asideKing == nil {
		return card.Card{}, false
	}
	return *e.asideKing, true
}

// Pile 出牌堆副本
func (e *Engine) Pile() []PileEntry {
	return slices.Clone(e.pile)
}

// Outcome 决斗结果，仅在 StateResolved 时有效
func (e *Engine) Outcome() (Outcome, bool) {
	return e.outcome, e.state == StateResolved
}

// Winner 胜者，未结束时返回 -1
func (e *Engine) Winner() int {
	if e.state != StateResolved {
		return -1
	}
	return e.outcome.Winner
}

// InFlight 尚未归属的牌：翻开的牌、一旁的 K 与出牌堆
func (e *Engine) InFlight() []card.Card {
	var cards []card.Card
	if e.state == StateTurn {
		cards = append(cards, e.reveal)
	}
	if e.asideKing != nil {
		cards = append(cards, *e.asideKing)
	}
	return append(cards, Unwrap(e.pile)...)
}
