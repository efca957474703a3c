// Package spectate 通过 WebSocket 向观战者推送对局快照
package spectate

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
	"github.com/palemoky/king-of-montenegro/internal/protocol/convert"
)

const (
	// DefaultMaxSpectators 默认观战人数上限
	DefaultMaxSpectators = 64

	// 每个 IP 每分钟最多建立的连接数
	connectionsPerMinute = 20
	banDuration          = time.Minute
)

// Hub 观战中心，实现 game.RenderSink。
// Render 只做非阻塞投递，慢的观战者会被断开。
type Hub struct {
	upgrader websocket.Upgrader
	origins  *OriginChecker
	limiter  *RateLimiter
	max      int

	mu         sync.RWMutex
	spectators map[string]*Spectator
	matchID    string
	last       []byte // 最近一次快照，新观战者连接后立即收到
	over       []byte // 对局结束消息
}

// NewHub 创建观战中心
func NewHub(allowedOrigins []string, maxSpectators int) *Hub {
	if maxSpectators <= 0 {
		maxSpectators = DefaultMaxSpectators
	}
	h := &Hub{
		origins:    NewOriginChecker(allowedOrigins),
		limiter:    NewRateLimiter(connectionsPerMinute, banDuration),
		max:        maxSpectators,
		spectators: make(map[string]*Spectator),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.origins.Check,
	}
	return h
}

// Render 实现 game.RenderSink
func (h *Hub) Render(s game.Snapshot) {
	snapshot, err := protocol.MustNewMessage(protocol.MsgSnapshot, convert.SnapshotToPayload(s)).Encode()
	if err != nil {
		log.Error().Err(err).Msg("encode snapshot")
		return
	}

	var over []byte
	if s.Result != nil {
		over, err = protocol.MustNewMessage(protocol.MsgGameOver, convert.ResultToPayload(*s.Result)).Encode()
		if err != nil {
			log.Error().Err(err).Msg("encode game over")
			return
		}
	}

	h.mu.Lock()
	h.matchID = s.MatchID
	h.last = snapshot
	if over != nil {
		h.over = over
	}
	targets := make([]*Spectator, 0, len(h.spectators))
	for _, sp := range h.spectators {
		targets = append(targets, sp)
	}
	h.mu.Unlock()

	for _, sp := range targets {
		sp.sendRaw(snapshot)
		if over != nil {
			sp.sendRaw(over)
		}
	}
}

// ServeHTTP 升级为 WebSocket 并注册观战者
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}
	if h.Count() >= h.max {
		http.Error(w, "Too many spectators", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	sp := newSpectator(h, conn)
	h.register(sp)

	go sp.WritePump()
	go sp.ReadPump()
}

func (h *Hub) register(sp *Spectator) {
	h.mu.Lock()
	h.spectators[sp.ID] = sp
	matchID, last, over := h.matchID, h.last, h.over
	h.mu.Unlock()

	sp.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		SpectatorID: sp.ID,
		MatchID:     matchID,
	}))
	if last != nil {
		sp.sendRaw(last)
	}
	if over != nil {
		sp.sendRaw(over)
	}
	log.Info().Str("spectator", sp.ID).Str("match", matchID).Msg("spectator joined")
}

func (h *Hub) unregister(sp *Spectator) {
	h.mu.Lock()
	if _, ok := h.spectators[sp.ID]; ok {
		delete(h.spectators, sp.ID)
	}
	h.mu.Unlock()

	sp.Close()
	log.Info().Str("spectator", sp.ID).Msg("spectator left")
}

// Count 当前观战人数
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

// Close 断开所有观战者
func (h *Hub) Close() {
	h.mu.Lock()
	spectators := h.spectators
	h.spectators = make(map[string]*Spectator)
	h.mu.Unlock()

	for _, sp := range spectators {
		sp.Close()
	}
}
