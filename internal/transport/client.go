// Package transport is the websocket client of the spectator feed.
package transport

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 心跳检测间隔
	heartbeatInterval = 5 * time.Second
	// 最大重连次数
	maxReconnectAttempts = 5
	// 重连间隔
	reconnectInterval = 2 * time.Second
)

// ErrClosed 客户端已关闭
var ErrClosed = errors.New("transport: client closed")

// Client 观战 WebSocket 客户端，断线后自动重连；服务端在连接时会重发最新快照
type Client struct {
	ServerURL string
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	// 回调
	OnMessage      func(*protocol.Message) // 消息回调
	OnReconnecting func(attempt, maxTries int)
	OnReconnect    func() // 重连成功回调
	OnClose        func() // 关闭回调（含重连失败）

	mu             sync.RWMutex
	conn           *websocket.Conn
	spectatorID    string
	matchID        string
	closed         bool
	reconnecting   atomic.Bool
	reconnectCount int
	backoff        time.Duration
	latency        atomic.Int64 // 网络延迟（毫秒）
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan []byte, 64),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
		backoff:   reconnectInterval,
	}
}

// Connect 连接服务器
func (c *Client) Connect() error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	c.start(conn)
	return nil
}

func (c *Client) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.Dial(c.ServerURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// start 为新连接启动读写协程
func (c *Client) start(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	stop := make(chan struct{})
	go c.readPump(conn, stop)
	go c.writePump(conn, stop)
}

// Receive 消息通道
func (c *Client) Receive() <-chan *protocol.Message {
	return c.receive
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("transport: send buffer full")
	}
}

// Ping 发送心跳，pong 返回时更新延迟
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// Close 关闭连接，不再重连
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// IsConnected 是否仍在使用（已连接或正在重连）
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// SpectatorID 服务端分配的观战者 ID
func (c *Client) SpectatorID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spectatorID
}

// MatchID 正在观看的对局
func (c *Client) MatchID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

// Latency 当前延迟（毫秒）
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

// IsReconnecting 是否正在重连
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}
