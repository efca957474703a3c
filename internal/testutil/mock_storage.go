//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// MockRecorder 实现 storage.ResultRecorder 的 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, res game.Result) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
