// Package websocket 提供把事件推送给 WebSocket 客户端的派发目标.
//
// Hub 同时是 http.Handler 与 events.Target: 客户端连接到 Hub 后，
// 每个派发到 Hub 的事件都以 JSON 文本帧推送给客户端.
// 客户端可以通过 ?events=a,b 只接收指定名称的事件.
//
// 示例:
//
//	hub := websocket.NewHub(websocket.DefaultConfig())
//	defer hub.Close()
//	http.Handle("/events", hub)
//
//	manager.Dispatch(ctx, "saved", data, []events.Target{hub})
package websocket

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Tsukikage7/eventkit/events"
	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// ErrHubClosed Hub 已关闭.
var ErrHubClosed = errors.New("websocket: hub is closed")

// Option Hub 配置选项.
type Option func(*Hub)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(h *Hub) {
		h.logger = log
	}
}

// WithMetrics 设置指标记录器.
func WithMetrics(r metrics.Recorder) Option {
	return func(h *Hub) {
		h.metrics = r
	}
}

// Hub WebSocket 派发目标.
type Hub struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   logger.Logger
	metrics  metrics.Recorder

	mu      sync.RWMutex
	clients map[string]*client
	closed  bool
}

// NewHub 创建 Hub，config 为 nil 时使用默认配置.
func NewHub(config *Config, opts ...Option) *Hub {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()

	h := &Hub{
		config:  config,
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				if config.CheckOrigin != nil {
					return config.CheckOrigin(r.Header.Get("Origin"))
				}
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = metrics.Nop()
	}
	return h
}

// ServeHTTP 升级连接并注册客户端.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logDebugf("upgrade failed: %v", err)
		return
	}

	c := newClient(h, conn, parseNames(r.URL.Query().Get("events")))

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logDebugf("client %s connected from %s", c.id, r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

// DispatchEvent 把事件推送给订阅了该事件名的客户端.
//
// 待发送队列已满的客户端会错过该事件.
func (h *Hub) DispatchEvent(_ context.Context, e *events.Event) bool {
	payload, err := events.Marshal(e)
	if err != nil {
		h.fail(e, err)
		return !e.DefaultPrevented()
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.wants(e.Name) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(payload) {
			h.fail(e, errors.New("client "+c.id+" send buffer full"))
		}
	}
	return !e.DefaultPrevented()
}

// Count 返回已连接的客户端数量.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close 断开所有客户端，之后的连接请求返回 503.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	return nil
}

// remove 注销客户端.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	c.close()
	h.logDebugf("client %s disconnected", c.id)
}

func (h *Hub) fail(e *events.Event, err error) {
	h.metrics.Counter("events_target_errors_total", map[string]string{"target": "websocket"})
	if h.logger != nil {
		h.logger.Warnf("[EventTarget] websocket 推送事件失败: name=%s id=%s err=%v", e.Name, e.ID, err)
	}
}

func (h *Hub) logDebugf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Debugf("[EventTarget] websocket "+format, args...)
	}
}

// parseNames 解析逗号分隔的事件名.
func parseNames(raw string) []string {
	if raw == "" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
