//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// MockSink 实现 game.RenderSink 的 mock
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Render(s game.Snapshot) {
	m.Called(s)
}

// RecordingSink 记录收到的所有快照
type RecordingSink struct {
	mu        sync.Mutex
	snapshots []game.Snapshot
}

func (r *RecordingSink) Render(s game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

// Snapshots 返回已记录快照的副本
func (r *RecordingSink) Snapshots() []game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.Snapshot(nil), r.snapshots...)
}

// Last 最后一个快照
func (r *RecordingSink) Last() (game.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return game.Snapshot{}, false
	}
	return r.snapshots[len(r.snapshots)-1], true
}
