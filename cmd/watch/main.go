package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/logger"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
	"github.com/palemoky/king-of-montenegro/internal/transport"
	"github.com/palemoky/king-of-montenegro/internal/ui/model"
)

func main() {
	serverAddr := flag.String("server", "localhost:1781", "观战服务地址")
	path := flag.String("path", "/ws", "观战路径")
	level := flag.String("log-level", "info", "日志级别")
	flag.Parse()

	if err := logger.Init(*level); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s%s", *serverAddr, *path)
	c := transport.NewClient(serverURL)
	m := model.NewWatchModel(serverURL)
	p := tea.NewProgram(m, tea.WithAltScreen())

	c.OnMessage = func(msg *protocol.Message) { p.Send(model.ServerMessage{Msg: msg}) }
	c.OnReconnecting = func(attempt, maxTries int) {
		p.Send(model.ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
	}
	c.OnReconnect = func() { p.Send(model.ReconnectSuccessMsg{}) }
	c.OnClose = func() { p.Send(model.ConnectionClosedMsg{}) }

	if err := c.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "无法连接到观战服务 %s: %v\n", serverURL, err)
		logger.Close()
		os.Exit(1)
	}
	defer c.Close()
	c.StartHeartbeat()

	log.Info().Str("url", serverURL).Msg("watching")
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("watch ui failed")
		fmt.Fprintf(os.Stderr, "启动观战界面时出错: %v\n", err)
	}
}
