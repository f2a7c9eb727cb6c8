package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client 已连接的 WebSocket 客户端.
type client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	done   chan struct{}
	filter map[string]struct{}

	closeOnce sync.Once
}

func newClient(h *Hub, conn *websocket.Conn, names []string) *client {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  h,
		send: make(chan []byte, h.config.SendBuffer),
		done: make(chan struct{}),
	}
	if len(names) > 0 {
		c.filter = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.filter[n] = struct{}{}
		}
	}
	return c
}

// wants 判断客户端是否订阅了事件名，未设置过滤时接收所有事件.
func (c *client) wants(name string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[name]
	return ok
}

// enqueue 非阻塞地放入待发送队列.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close 通知写协程发送关闭帧并断开连接.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readPump 读取循环，只处理控制帧，连接断开后注销客户端.
func (c *client) readPump() {
	defer c.hub.remove(c)

	cfg := c.hub.config
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logDebugf("client %s read error: %v", c.id, err)
			}
			return
		}
	}
}

// writePump 写入循环.
func (c *client) writePump() {
	cfg := c.hub.config
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(cfg.WriteTimeout))
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.hub.logDebugf("client %s write error: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
