package ai

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/ui/view"
)

// Console 行式终端上的人类玩家：把局面写到 out，从 in 读取一行指令。
// 同时实现 game.RenderSink。
type Console struct {
	seat    int
	out     io.Writer
	primary bool // 只有主座位打印终局结果
	r       *lineReader
}

// lineReader 在独立协程中读取输入，Decide 可以被 ctx 打断
type lineReader struct {
	in    io.Reader
	lines chan string
	once  sync.Once

	mu  sync.Mutex
	err error // 输入流结束后保留的错误
}

// NewConsole 创建终端玩家，seat 决定渲染时能看到谁的手牌
func NewConsole(in io.Reader, out io.Writer, seat int) *Console {
	return &Console{
		seat:    seat,
		out:     out,
		primary: true,
		r: &lineReader{
			in:    in,
			lines: make(chan string),
		},
	}
}

// ForSeat 返回共享同一输入输出的另一个座位，两人轮流使用同一终端
func (c *Console) ForSeat(seat int) *Console {
	return &Console{seat: seat, out: c.out, r: c.r}
}

func (r *lineReader) start() {
	r.once.Do(func() { go r.loop() })
}

func (r *lineReader) loop() {
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		r.lines <- strings.TrimSpace(scanner.Text())
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	close(r.lines)
}

func (r *lineReader) closedErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Decide 实现 game.ActionProvider
func (c *Console) Decide(ctx context.Context, p game.Prompt) (string, error) {
	c.r.start()

	fmt.Fprint(c.out, view.PromptView(p))

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-c.r.lines:
			if !ok {
				return "", fmt.Errorf("console input closed: %w", c.r.closedErr())
			}
			if line == "" {
				fmt.Fprint(c.out, "> ")
				continue
			}
			return line, nil
		}
	}
}

// Render 实现 game.RenderSink
func (c *Console) Render(s game.Snapshot) {
	if s.Phase == game.PhaseOver && s.Result != nil {
		if !c.primary {
			return
		}
		fmt.Fprintln(c.out, view.TextView(s, c.seat))
		fmt.Fprintln(c.out, view.GameOverView(*s.Result, 60))
		return
	}
	if s.Acting != c.seat {
		return
	}
	fmt.Fprint(c.out, view.TextView(s, c.seat))
}
