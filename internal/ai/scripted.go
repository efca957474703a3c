package ai

import (
	"context"
	"errors"
	"sync"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// ErrScriptExhausted 脚本已用完且没有后备策略
var ErrScriptExhausted = errors.New("ai: script exhausted")

// Scripted 按顺序返回预设指令；指令用完后交给 fallback，没有 fallback 时返回错误
type Scripted struct {
	mu       sync.Mutex
	tokens   []string
	fallback game.ActionProvider
}

// NewScripted 创建脚本策略
func NewScripted(tokens []string, fallback game.ActionProvider) *Scripted {
	return &Scripted{
		tokens:   append([]string(nil), tokens...),
		fallback: fallback,
	}
}

// Decide 实现 game.ActionProvider
func (s *Scripted) Decide(ctx context.Context, p game.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	if len(s.tokens) > 0 {
		token := s.tokens[0]
		s.tokens = s.tokens[1:]
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	if s.fallback == nil {
		return "", ErrScriptExhausted
	}
	return s.fallback.Decide(ctx, p)
}

// Remaining 剩余脚本指令数
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
