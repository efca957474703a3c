package spectate

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 1024

	// 发送缓冲区大小
	sendBufferSize = 64
)

// Spectator 一个观战连接
type Spectator struct {
	ID string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func newSpectator(h *Hub, conn *websocket.Conn) *Spectator {
	return &Spectator{
		ID:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// ReadPump 读取客户端消息；观战只接受 ping
func (s *Spectator) ReadPump() {
	defer func() {
		s.hub.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("spectator", s.ID).Msg("read error")
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			s.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		switch msg.Type {
		case protocol.MsgPing:
			var ts int64
			if p, err := protocol.ParsePayload[protocol.PingPayload](msg); err == nil {
				ts = p.Timestamp
			}
			s.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
				ClientTimestamp: ts,
				ServerTimestamp: time.Now().UnixMilli(),
			}))
		default:
			s.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		}
	}
}

// WritePump 向 WebSocket 写入消息
func (s *Spectator) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息；缓冲区满时断开这个观战者，不阻塞对局
func (s *Spectator) SendMessage(msg *protocol.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Error().Err(err).Msg("encode message")
		return
	}
	s.sendRaw(data)
}

func (s *Spectator) sendRaw(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.send <- data:
	default:
		log.Warn().Str("spectator", s.ID).Msg("send buffer full, dropping spectator")
		go s.Close()
	}
}

// Close 关闭发送通道，WritePump 随后关闭连接
func (s *Spectator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.send)
	}
}
