// Package game 对局主循环：检查胜负 → 宣战阶段 → 决斗阶段 → 重复
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
	"github.com/palemoky/king-of-montenegro/internal/game/rule"
	"github.com/palemoky/king-of-montenegro/internal/game/table"
)

// Reason 对局结束原因
type Reason string

const (
	ReasonVictory       Reason = "victory"
	ReasonDeckExhausted Reason = "deck_exhausted"
	ReasonRoundLimit    Reason = "round_limit"
)

// PlayerStats 单名玩家的对局统计
type PlayerStats struct {
	Name         string
	DuelsWon     int
	WarsDeclared int
	WarsWon      int
	ArmyCards    int
}

// Result 对局结果
type Result struct {
	MatchID string
	Winner  int // -1 表示无人获胜
	Reason  Reason
	Rounds  int
	Players [2]PlayerStats
}

// HasWinner 是否有胜者
func (r Result) HasWinner() bool {
	return r.Winner >= 0
}

// Game 一局游戏，只能在单个协程中运行
type Game struct {
	id         string
	table      *table.Table
	providers  [2]ActionProvider
	sink       RenderSink
	maxRounds  int
	maxInvalid int

	round   int
	phase   Phase
	engine  *duel.Engine
	message string
	stats   [2]PlayerStats
}

// Option 对局选项
type Option func(*Game)

// WithMatchID 指定对局 ID，默认随机生成
func WithMatchID(id string) Option {
	return func(g *Game) { g.id = id }
}

// WithMaxRounds 回合上限，0 表示不限
func WithMaxRounds(n int) Option {
	return func(g *Game) { g.maxRounds = n }
}

// WithMaxInvalidActions 同一次请求中连续被拒绝的动作上限，超过后按动作源失败处理；0 表示不限
func WithMaxInvalidActions(n int) Option {
	return func(g *Game) { g.maxInvalid = n }
}

// New 创建对局；牌桌需已发好牌
func New(t *table.Table, providers [2]ActionProvider, sink RenderSink, opts ...Option) *Game {
	if sink == nil {
		sink = nopSink{}
	}
	g := &Game{
		id:        uuid.New().String(),
		table:     t,
		providers: providers,
		sink:      sink,
	}
	for _, opt := range opts {
		opt(g)
	}
	for i, p := range t.Players {
		g.stats[i].Name = p.Name
	}
	return g
}

// ID 对局 ID
func (g *Game) ID() string { return g.id }

// Run 运行对局直到有人获胜或无法再进行决斗。ctx 被取消时返回 ctx.Err()。
func (g *Game) Run(ctx context.Context) (Result, error) {
	log.Info().Str("match", g.id).
		Str("p1", g.table.Players[0].Name).
		Str("p2", g.table.Players[1].Name).
		Msg("match started")

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if winner, ok := rule.CheckVictory(g.table.Players); ok {
			return g.finish(winner, ReasonVictory), nil
		}
		if g.maxRounds > 0 && g.round >= g.maxRounds {
			return g.finish(-1, ReasonRoundLimit), nil
		}

		g.round++
		log.Debug().Str("match", g.id).Int("round", g.round).Int("turn", g.table.Turn).Msg("round started")

		if err := g.warPhase(ctx); err != nil {
			return Result{}, err
		}

		exhausted, err := g.duelPhase(ctx)
		if err != nil {
			return Result{}, err
		}
		if exhausted {
			return g.finish(-1, ReasonDeckExhausted), nil
		}
	}
}

// warPhase 当前行动玩家可以宣战或 pass
func (g *Game) warPhase(ctx context.Context) error {
	g.phase = PhaseWar
	actor := g.table.Turn
	var lastErr error
	rejected := 0

	for {
		token, err := g.decide(ctx, actor, nil, lastErr)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			g.providerFailure(actor, err, "pass")
			return nil
		}

		a, err := rule.ParseAction(token)
		if err == nil && !a.Kind.IsWarAction() {
			err = fmt.Errorf("%q during the war phase: %w", token, apperrors.ErrUnrecognizedAction)
		}
		if err == nil {
			if a.Kind == rule.Pass {
				return nil
			}
			var res rule.WarResult
			res, err = rule.ResolveWar(g.table, rule.WarDeclaration{
				Attacker:       actor,
				Suit:           a.Suit,
				Reinforcements: a.Reinforcements,
			})
			if err == nil {
				g.recordWar(res)
				return nil
			}
		}

		lastErr = err
		rejected++
		log.Debug().Err(err).Str("match", g.id).Int("player", actor).Str("token", token).Msg("war action rejected")
		if g.maxInvalid > 0 && rejected >= g.maxInvalid {
			g.providerFailure(actor, err, "pass")
			return nil
		}
	}
}

func (g *Game) recordWar(res rule.WarResult) {
	g.stats[res.Attacker].WarsDeclared++
	g.stats[res.Winner].WarsWon++
	g.table.Turn = res.Winner

	attacker := g.table.Players[res.Attacker].Name
	if res.AttackerWon() {
		g.message = fmt.Sprintf("%s wins the war for %s (%d vs %d)", attacker, res.Suit, res.AttackTotal, res.DefendTotal)
	} else {
		g.message = fmt.Sprintf("%s loses the war for %s (%d vs %d)", attacker, res.Suit, res.AttackTotal, res.DefendTotal)
	}
	log.Info().Str("match", g.id).
		Int("attacker", res.Attacker).
		Str("suit", res.Suit.String()).
		Int("attack", res.AttackTotal).
		Int("defend", res.DefendTotal).
		Int("winner", res.Winner).
		Int("discarded", len(res.Discarded)).
		Msg("war resolved")
}

// duelPhase 进行一轮决斗；无法翻牌时 exhausted 为 true
func (g *Game) duelPhase(ctx context.Context) (exhausted bool, err error) {
	g.phase = PhaseDuel
	e := duel.New(g.table)
	if err := e.Reveal(); err != nil {
		if errors.Is(err, apperrors.ErrDeckExhausted) {
			log.Info().Str("match", g.id).Int("round", g.round).Msg("no further duels possible")
			return true, nil
		}
		return false, err
	}
	g.engine = e
	defer func() { g.engine = nil }()

	var lastErr error
	rejected := 0
	for e.State() != duel.StateResolved {
		actor := e.Acting()
		reveal, _ := e.RevealCard()

		token, err := g.decide(ctx, actor, &reveal, lastErr)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			g.providerFailure(actor, err, "concede")
			if err := e.Apply(rule.ConcedeAction); err != nil {
				return false, err
			}
			break
		}

		a, err := rule.ParseAction(token)
		if err == nil {
			err = e.Apply(a)
		}
		if err == nil {
			lastErr = nil
			rejected = 0
			continue
		}
		if !apperrors.IsRecoverable(err) {
			return false, err
		}

		lastErr = err
		rejected++
		log.Debug().Err(err).Str("match", g.id).Int("player", actor).Str("token", token).Msg("duel action rejected")
		if g.maxInvalid > 0 && rejected >= g.maxInvalid {
			g.providerFailure(actor, err, "concede")
			if err := e.Apply(rule.ConcedeAction); err != nil {
				return false, err
			}
		}
	}

	out, _ := e.Outcome()
	g.stats[out.Winner].DuelsWon++
	name := g.table.Players[out.Winner].Name
	if out.ByConcession {
		g.message = name + " wins the duel by concession"
	} else {
		g.message = name + " wins the duel"
	}
	log.Info().Str("match", g.id).Int("round", g.round).Int("winner", out.Winner).
		Bool("concession", out.ByConcession).Msg("duel resolved")
	return false, nil
}

// providerFailure 动作源出错时按 forced 动作处理
func (g *Game) providerFailure(actor int, err error, forced string) {
	log.Warn().Err(err).Str("match", g.id).Int("player", actor).Str("forced", forced).
		Msg(apperrors.ErrProviderFailure.Error())
	g.message = fmt.Sprintf("%s: %s, forced %s", g.table.Players[actor].Name, apperrors.ErrProviderFailure, forced)
}

// decide 推送快照后向 actor 请求动作
func (g *Game) decide(ctx context.Context, actor int, reveal *card.Card, lastErr error) (string, error) {
	g.sink.Render(g.snapshot(actor, nil))

	provider := g.providers[actor]
	if provider == nil {
		return "", fmt.Errorf("player %d has no action provider", actor)
	}

	prompt := Prompt{
		Round:    g.round,
		Self:     stateOf(actor, g.table.Players[actor], true),
		Opponent: stateOf(table.Opponent(actor), g.table.Players[table.Opponent(actor)], false),
		Reveal:   reveal,
		Error:    lastErr,
	}
	if g.engine != nil {
		prompt.Pile = g.engine.Pile()
	}

	token, err := provider.Decide(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrProviderFailure, err)
	}
	return token, nil
}

func (g *Game) finish(winner int, reason Reason) Result {
	g.phase = PhaseOver
	res := Result{
		MatchID: g.id,
		Winner:  winner,
		Reason:  reason,
		Rounds:  g.round,
		Players: g.stats,
	}
	for i, p := range g.table.Players {
		res.Players[i].ArmyCards = p.ArmyTotal()
	}

	switch reason {
	case ReasonVictory:
		g.message = g.table.Players[winner].Name + " wins the game!"
	case ReasonDeckExhausted:
		g.message = "No more cards. Game over."
	case ReasonRoundLimit:
		g.message = "Round limit reached. Game over."
	}

	g.sink.Render(g.snapshot(g.table.Turn, &res))
	log.Info().Str("match", g.id).Int("winner", winner).Str("reason", string(reason)).Int("rounds", g.round).Msg("match finished")
	return res
}

// Snapshot 当前状态的副本
func (g *Game) Snapshot() Snapshot {
	return g.snapshot(g.table.Turn, nil)
}

func (g *Game) snapshot(acting int, res *Result) Snapshot {
	s := Snapshot{
		MatchID:     g.id,
		Round:       g.round,
		Phase:       g.phase,
		Acting:      acting,
		DeckSize:    g.table.Deck.Len(),
		DiscardSize: len(g.table.Discard),
		Message:     g.message,
		Result:      res,
	}
	for i, p := range g.table.Players {
		s.Players[i] = stateOf(i, p, true)
	}
	if g.engine != nil {
		if reveal, ok := g.engine.RevealCard(); ok && g.engine.State() == duel.StateTurn {
			s.Reveal = &reveal
		}
		if king, ok := g.engine.AsideKing(); ok {
			s.AsideKing = &king
		}
		s.Pile = g.engine.Pile()
	}
	return s
}
