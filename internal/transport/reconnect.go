package transport

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/logger"
)

// StartHeartbeat 启动心跳检测
func (c *Client) StartHeartbeat() {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsConnected() && !c.IsReconnecting() {
					_ = c.Ping()
				}
			case <-c.done:
				return
			}
		}
	}()
}

// tryReconnect 按指数退避重新连接
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	backoff := c.backoff
	for {
		c.mu.Lock()
		if c.reconnectCount >= maxReconnectAttempts {
			c.mu.Unlock()
			break
		}
		c.reconnectCount++
		attempt := c.reconnectCount
		c.mu.Unlock()

		// 通过回调通知 UI 正在重连
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, maxReconnectAttempts)
		}

		select {
		case <-time.After(backoff):
		case <-c.done:
			c.reconnecting.Store(false)
			return
		}

		// 计算下一次退避时间 (最大 30 秒)
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}

		conn, err := c.dial()
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("reconnect failed")
			continue
		}

		c.mu.RLock()
		closed := c.closed
		c.mu.RUnlock()
		if closed {
			_ = conn.Close()
			c.reconnecting.Store(false)
			return
		}

		// 重连成功以收到 connected 消息为准
		c.start(conn)
		return
	}

	// 重连失败
	log.Warn().Str("url", c.ServerURL).Msg("giving up reconnecting")
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
