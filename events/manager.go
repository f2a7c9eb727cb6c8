// Package events 提供按名称注册回调的事件管理器.
//
// Dispatch 先把事件派发给传入的 Target（进程内 Element 或 kafka、amqp、
// redis、websocket 等远程目标），再按注册顺序调用该名称下的回调.
//
// 示例:
//
//	m := events.NewManager()
//	saved := events.NewListener(func(ctx context.Context, data any) {
//	    fmt.Println("saved", data)
//	})
//	m.On("saved", saved)
//	m.Dispatch(ctx, "saved", map[string]any{"id": 1}, nil)
package events

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/eventkit/metrics"
)

// Listener 事件回调.
//
// 以指针作为身份，On 与 Remove 按指针匹配.
type Listener struct {
	fn func(ctx context.Context, data any)
}

// NewListener 创建事件回调.
func NewListener(fn func(ctx context.Context, data any)) *Listener {
	return &Listener{fn: fn}
}

// Manager 事件管理器，并发安全.
type Manager struct {
	opts *options

	mu        sync.RWMutex
	listeners map[string][]*Listener
}

// NewManager 创建事件管理器.
func NewManager(opts ...Option) *Manager {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}
	return &Manager{
		opts:      o,
		listeners: make(map[string][]*Listener),
	}
}

// On 注册回调.
//
// 同一回调在同一名称下只保留一份，重复注册会移到末尾.
func (m *Manager) On(name string, l *Listener) {
	if l == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners[name] = append(removeListener(m.listeners[name], l), l)
}

// Remove 移除回调.
//
// 返回该名称是否注册过回调，与回调本身是否存在无关.
func (m *Manager) Remove(name string, l *Listener) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.listeners[name]
	if !ok {
		return false
	}
	m.listeners[name] = removeListener(list, l)
	return true
}

// Listeners 返回名称下的回调数量.
func (m *Manager) Listeners(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners[name])
}

// Dispatch 派发事件.
//
// 先以可取消事件依次派发给 targets，再按注册顺序调用 name 下的回调.
// 返回派发给 targets 的事件，可通过 DefaultPrevented 检查是否被取消.
// data 为 nil 时使用空对象.
func (m *Manager) Dispatch(ctx context.Context, name string, data any, targets []Target, opts ...DispatchOption) *Event {
	start := time.Now()
	if data == nil {
		data = map[string]any{}
	}

	m.mu.RLock()
	listeners := make([]*Listener, len(m.listeners[name]))
	copy(listeners, m.listeners[name])
	m.mu.RUnlock()

	var span trace.Span
	if m.opts.tracer != nil {
		ctx, span = m.opts.tracer.Start(ctx, "events.dispatch",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("event.name", name),
				attribute.Int("event.targets", len(targets)),
				attribute.Int("event.listeners", len(listeners)),
			),
		)
		defer span.End()
	}

	event := newEvent(name, data, m.opts.defaultMeta, newEventInit(opts))

	m.dispatchTargets(ctx, event, targets)
	m.dispatchListeners(ctx, name, data, listeners)

	if span != nil {
		span.SetAttributes(
			attribute.String("event.id", event.ID),
			attribute.Bool("event.default_prevented", event.DefaultPrevented()),
		)
	}

	labels := map[string]string{"name": name}
	m.opts.metrics.Counter("events_dispatch_total", labels)
	m.opts.metrics.Histogram("events_dispatch_duration_seconds", time.Since(start).Seconds(), labels)

	return event
}

// dispatchTargets 依次派发给目标.
func (m *Manager) dispatchTargets(ctx context.Context, event *Event, targets []Target) {
	for i, target := range targets {
		if target == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logErrorf("target %d panic on %q: %v\n%s", i, event.Name, r, debug.Stack())
				}
			}()
			target.DispatchEvent(ctx, event)
		}()
	}
}

// dispatchListeners 按注册顺序调用回调.
func (m *Manager) dispatchListeners(ctx context.Context, name string, data any, listeners []*Listener) {
	for _, l := range listeners {
		if l.fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logErrorf("listener panic on %q: %v\n%s", name, r, debug.Stack())
				}
			}()
			l.fn(ctx, data)
		}()
	}
}

// removeListener 返回移除 l 后的新切片.
func removeListener(list []*Listener, l *Listener) []*Listener {
	for i, other := range list {
		if other == l {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func (m *Manager) logErrorf(format string, args ...any) {
	if log := m.opts.logger; log != nil {
		log.Errorf("[EventManager] "+format, args...)
	}
}
