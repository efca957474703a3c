// Package ai 提供电脑玩家与非交互式动作源
package ai

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

// Random 随机策略：没人出牌时随机出一张，否则在 call / concede / play 之间随机选择。
// 宣战阶段只在稳赢时宣战。
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom 创建随机策略，rng 为空时使用全局随机源
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// NewSeededRandom 使用固定种子，便于复现对局
func NewSeededRandom(seed uint64) *Random {
	return NewRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (r *Random) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	return r.rng.IntN(n)
}

// Decide 实现 game.ActionProvider
func (r *Random) Decide(ctx context.Context, p game.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.IsWarPhase() {
		return r.war(p), nil
	}

	hand := p.Self.Hand
	if len(p.Pile) == 0 {
		if len(hand) == 0 {
			return "concede", nil
		}
		return r.play(hand), nil
	}

	switch r.intN(3) {
	case 0:
		return "call", nil
	case 1:
		return "concede", nil
	default:
		if len(hand) == 0 {
			return "call", nil
		}
		return r.play(hand), nil
	}
}

// play 随机出一张；选到 K 且还有别的牌时作为王牌组合打出
func (r *Random) play(hand []card.Card) string {
	idx := r.intN(len(hand))
	if hand[idx].IsKing() && len(hand) > 1 {
		other := r.intN(len(hand) - 1)
		if other >= idx {
			other++
		}
		return fmt.Sprintf("wild %d %d", idx, other)
	}
	return fmt.Sprintf("play %d", idx)
}

// war 对手手牌未知，按对手手牌全是该花色估算防守强度
func (r *Random) war(p game.Prompt) string {
	for _, s := range card.Suits {
		if p.Self.ArmySize(s) == 0 || p.Opponent.ArmySize(s) == 0 {
			continue
		}
		attack := p.Self.ArmySize(s) + p.Self.CountInHand(s)
		defend := p.Opponent.ArmySize(s) + p.Opponent.HandSize
		if attack > defend {
			return "war " + s.String()
		}
	}
	return "pass"
}
