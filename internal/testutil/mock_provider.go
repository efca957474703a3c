//go:build !production

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// MockProvider 实现 game.ActionProvider 的 mock
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Decide(ctx context.Context, p game.Prompt) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

// ScriptProvider 按顺序返回预设指令，不使用 testify（用于不需要断言调用的测试）
type ScriptProvider struct {
	mu      sync.Mutex
	Tokens  []string
	Prompts []game.Prompt
}

// NewScriptProvider 创建脚本 provider
func NewScriptProvider(tokens ...string) *ScriptProvider {
	return &ScriptProvider{Tokens: tokens}
}

func (s *ScriptProvider) Decide(ctx context.Context, p game.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Prompts = append(s.Prompts, p)
	if len(s.Tokens) == 0 {
		return "", fmt.Errorf("script exhausted after %d prompts", len(s.Prompts))
	}
	token := s.Tokens[0]
	s.Tokens = s.Tokens[1:]
	return token, nil
}

// Calls 已收到的请求次数
func (s *ScriptProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
