package game

import (
	"context"
	"slices"

	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
)

// Phase 对局阶段
type Phase int

const (
	PhaseWar Phase = iota
	PhaseDuel
	PhaseOver
)

var phaseNames = map[Phase]string{
	PhaseWar:  "war",
	PhaseDuel: "duel",
	PhaseOver: "over",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePhase 解析阶段名称
func ParsePhase(name string) (Phase, bool) {
	for p, n := range phaseNames {
		if n == name {
			return p, true
		}
	}
	return PhaseWar, false
}

// PlayerState 可观察的玩家状态；对手视角下 Hand 为空，只有 HandSize
type PlayerState struct {
	Seat     int
	Name     string
	Hand     []card.Card
	HandSize int
	Armies   player.Armies
}

// ArmySize 某花色军队的张数
func (s PlayerState) ArmySize(suit card.Suit) int {
	return len(s.Armies[suit])
}

// CountInHand 手牌中某花色的张数
func (s PlayerState) CountInHand(suit card.Suit) int {
	n := 0
	for _, c := range s.Hand {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

func stateOf(seat int, p *player.Player, revealHand bool) PlayerState {
	s := PlayerState{
		Seat:     seat,
		Name:     p.Name,
		HandSize: len(p.Hand),
	}
	if revealHand {
		s.Hand = slices.Clone(p.Hand)
	}
	for i, army := range p.Armies {
		s.Armies[i] = slices.Clone(army)
	}
	return s
}

// Prompt 请求动作时提供给 ActionProvider 的信息。
// Reveal 为 nil 表示宣战阶段，否则为决斗阶段。
type Prompt struct {
	Round    int
	Self     PlayerState
	Opponent PlayerState
	Reveal   *card.Card
	Pile     []duel.PileEntry
	Error    error // 上一次动作被拒绝的原因
}

// IsWarPhase 是否在请求宣战决定
func (p Prompt) IsWarPhase() bool {
	return p.Reveal == nil
}

// ActionProvider 为一名玩家提供动作字符串（人类输入或 AI）
type ActionProvider interface {
	Decide(ctx context.Context, p Prompt) (string, error)
}

// ProviderFunc 函数适配 ActionProvider
type ProviderFunc func(ctx context.Context, p Prompt) (string, error)

func (f ProviderFunc) Decide(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// Snapshot 推送给 RenderSink 的只读状态副本
type Snapshot struct {
	MatchID     string
	Round       int
	Phase       Phase
	Acting      int
	Players     [2]PlayerState
	Reveal      *card.Card
	AsideKing   *card.Card
	Pile        []duel.PileEntry
	DeckSize    int
	DiscardSize int
	Message     string
	Result      *Result // 仅 PhaseOver
}

// CardCount 快照中所有牌的张数，始终为 52
func (s Snapshot) CardCount() int {
	n := s.DeckSize + s.DiscardSize + len(duel.Unwrap(s.Pile))
	if s.Reveal != nil {
		n++
	}
	if s.AsideKing != nil {
		n++
	}
	for _, p := range s.Players {
		n += p.HandSize
		for _, army := range p.Armies {
			n += len(army)
		}
	}
	return n
}

// RenderSink 接收状态推送，不得修改对局
type RenderSink interface {
	Render(s Snapshot)
}

// SinkFunc 函数适配 RenderSink
type SinkFunc func(s Snapshot)

func (f SinkFunc) Render(s Snapshot) { f(s) }

// MultiSink 依次推送给多个 sink
type MultiSink []RenderSink

func (m MultiSink) Render(s Snapshot) {
	for _, sink := range m {
		if sink != nil {
			sink.Render(s)
		}
	}
}

type nopSink struct{}

func (nopSink) Render(Snapshot) {}
