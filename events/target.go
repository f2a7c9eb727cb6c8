package events

import (
	"context"
	"sync"
)

// Target 事件派发目标.
//
// DispatchEvent 返回 false 表示事件可取消且默认行为已被取消.
type Target interface {
	DispatchEvent(ctx context.Context, e *Event) bool
}

// TargetFunc 函数形式的 Target.
type TargetFunc func(ctx context.Context, e *Event) bool

// DispatchEvent 调用函数本身.
func (f TargetFunc) DispatchEvent(ctx context.Context, e *Event) bool {
	return f(ctx, e)
}

// Subscription 监听器的订阅.
type Subscription interface {
	Unsubscribe()
}

// Element 进程内的事件目标，按事件名注册监听器.
//
// 示例:
//
//	el := events.NewElement("button")
//	el.AddEventListener("saved", func(e *events.Event) { e.PreventDefault() })
//	ev := manager.Dispatch(ctx, "saved", data, []events.Target{el})
//	ev.DefaultPrevented() // true
type Element struct {
	id string

	mu        sync.RWMutex
	nextID    uint64
	listeners map[string][]*elementListener
}

type elementListener struct {
	el   *Element
	name string
	id   uint64
	fn   func(*Event)
}

// NewElement 创建事件目标.
func NewElement(id string) *Element {
	return &Element{
		id:        id,
		listeners: make(map[string][]*elementListener),
	}
}

// ID 返回标识.
func (el *Element) ID() string {
	return el.id
}

// AddEventListener 注册事件监听器.
func (el *Element) AddEventListener(name string, fn func(*Event)) Subscription {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.nextID++
	l := &elementListener{el: el, name: name, id: el.nextID, fn: fn}
	el.listeners[name] = append(el.listeners[name], l)
	return l
}

// DispatchEvent 按注册顺序调用监听器.
func (el *Element) DispatchEvent(_ context.Context, e *Event) bool {
	el.mu.RLock()
	listeners := make([]*elementListener, len(el.listeners[e.Name]))
	copy(listeners, el.listeners[e.Name])
	el.mu.RUnlock()

	for _, l := range listeners {
		if l.fn != nil {
			l.fn(e)
		}
	}
	return !e.DefaultPrevented()
}

// Unsubscribe 移除监听器，可重复调用.
func (l *elementListener) Unsubscribe() {
	el := l.el
	el.mu.Lock()
	defer el.mu.Unlock()

	list := el.listeners[l.name]
	for i, other := range list {
		if other.id == l.id {
			el.listeners[l.name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}
