package transport

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/logger"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

// readPump 从服务器读取消息
func (c *Client) readPump(conn *websocket.Conn, stop chan struct{}) {
	defer c.handleReadExit(conn, stop)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("spectate read error")
			}
			return
		}

		msg, err := protocol.Decode(message)
		if err != nil {
			log.Warn().Err(err).Msg("decode message")
			continue
		}

		c.processMessage(msg)
	}
}

func (c *Client) handleReadExit(conn *websocket.Conn, stop chan struct{}) {
	if r := recover(); r != nil {
		logger.LogPanic(r)
	}
	close(stop)
	_ = conn.Close()

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}

	// 尝试重连
	if !c.reconnecting.Load() {
		go c.tryReconnect()
	}
}

func (c *Client) processMessage(msg *protocol.Message) {
	isReconnected := c.handleInternalMessage(msg)

	// 回调处理
	if c.OnMessage != nil {
		c.OnMessage(msg)
	}

	// 同时发送到 channel
	select {
	case c.receive <- msg:
	default:
	}

	// 重连成功回调放在最后，确保快照已经送达
	if isReconnected && c.OnReconnect != nil {
		c.OnReconnect()
	}
}

func (c *Client) handleInternalMessage(msg *protocol.Message) bool {
	switch msg.Type {
	case protocol.MsgConnected:
		if payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			c.mu.Lock()
			c.spectatorID = payload.SpectatorID
			c.matchID = payload.MatchID
			c.reconnectCount = 0
			c.mu.Unlock()
		}
		return c.reconnecting.CompareAndSwap(true, false)
	case protocol.MsgPong:
		if payload, err := protocol.ParsePayload[protocol.PongPayload](msg); err == nil {
			c.latency.Store(time.Now().UnixMilli() - payload.ClientTimestamp)
		}
	}
	return false
}

// writePump 向服务器写入消息，stop 关闭时退出
func (c *Client) writePump(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-stop:
			return

		case <-c.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
