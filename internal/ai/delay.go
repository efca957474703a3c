package ai

import (
	"context"
	"time"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// Delayed 让电脑玩家在回答前等待一段时间，方便人类看清局面
type Delayed struct {
	provider game.ActionProvider
	delay    time.Duration
}

// WithDelay 包装 provider；delay <= 0 时原样返回
func WithDelay(provider game.ActionProvider, delay time.Duration) game.ActionProvider {
	if delay <= 0 {
		return provider
	}
	return &Delayed{provider: provider, delay: delay}
}

// Decide 实现 game.ActionProvider
func (d *Delayed) Decide(ctx context.Context, p game.Prompt) (string, error) {
	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}
	return d.provider.Decide(ctx, p)
}
