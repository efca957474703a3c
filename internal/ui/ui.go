// Package ui provides the terminal front end for a local game.
package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/ui/model"
)

// ErrClosed is returned by Decide once the UI has exited.
var ErrClosed = errors.New("ui: closed")

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge connects a running game to the bubbletea program. It is the
// game.ActionProvider of the local seat and a game.RenderSink.
type Bridge struct {
	seat    int
	replies chan string
	closed  chan struct{}
	once    sync.Once

	mu      sync.RWMutex
	program sender
}

// NewBridge creates a bridge for the player at seat.
func NewBridge(seat int) *Bridge {
	return &Bridge{
		seat:    seat,
		replies: make(chan string, 1),
		closed:  make(chan struct{}),
	}
}

// Attach sets the program that receives prompts and snapshots.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Decide implements game.ActionProvider.
func (b *Bridge) Decide(ctx context.Context, p game.Prompt) (string, error) {
	// 丢弃上一次提示残留的输入
	select {
	case <-b.replies:
	default:
	}

	b.send(model.PromptMsg{Prompt: p})

	select {
	case token := <-b.replies:
		return token, nil
	case <-b.closed:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Render implements game.RenderSink.
func (b *Bridge) Render(s game.Snapshot) {
	b.send(model.SnapshotMsg{Snapshot: s})
}

// Submit hands a command from the model to the waiting Decide call.
// It never blocks; a command nobody asked for is dropped.
func (b *Bridge) Submit(token string) {
	select {
	case b.replies <- token:
	default:
	}
}

// Done reports the end of the game loop to the program.
func (b *Bridge) Done(res game.Result, err error) {
	b.send(model.GameDoneMsg{Result: res, Err: err})
}

// Close releases a pending Decide call.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.closed) })
}

// NewProgram builds the bubbletea program for the bridge's seat and
// attaches it to the bridge.
func NewProgram(ctx context.Context, b *Bridge, opts ...tea.ProgramOption) *tea.Program {
	m := model.NewGameModel(b.seat, b.Submit)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	b.Attach(p)
	return p
}

// Run plays g in the terminal until the player quits. The game runs in
// its own goroutine; quitting the UI cancels it.
func Run(ctx context.Context, g *game.Game, b *Bridge) (game.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := NewProgram(ctx, b)

	type outcome struct {
		res game.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := g.Run(ctx)
		done <- outcome{res, err}
		b.Done(res, err)
	}()

	_, uiErr := p.Run()
	cancel()
	b.Close()

	out := <-done
	if out.err != nil {
		return out.res, out.err
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) && !errors.Is(uiErr, context.Canceled) {
		return out.res, uiErr
	}
	return out.res, nil
}
