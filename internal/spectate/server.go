package spectate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/config"
)

// Server 观战 HTTP 服务
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// NewServer 创建观战服务
func NewServer(cfg config.SpectateConfig, hub *Hub) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		hub: hub,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start 监听端口并在后台提供服务
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("spectate server stopped")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("spectate server started")
	return nil
}

// Addr 实际监听地址
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.http.Addr
	}
	return s.ln.Addr().String()
}

// Shutdown 断开观战者并关闭服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
