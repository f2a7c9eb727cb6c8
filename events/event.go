package events

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Tsukikage7/eventkit/objects"
)

// Event 派发到 Target 的事件.
//
// Detail 总是等于 Dispatch 传入的 data.
type Event struct {
	ID         string
	Name       string
	Detail     any
	Cancelable bool
	Bubbles    bool
	Composed   bool
	Meta       map[string]any
	Timestamp  time.Time

	prevented atomic.Bool
}

// PreventDefault 标记事件的默认行为被取消，事件不可取消时无效.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.prevented.Store(true)
	}
}

// DefaultPrevented 返回默认行为是否被取消.
func (e *Event) DefaultPrevented() bool {
	return e.prevented.Load()
}

// DispatchOption 事件初始化选项.
type DispatchOption func(*eventInit)

type eventInit struct {
	cancelable bool
	bubbles    bool
	composed   bool
	meta       map[string]any
}

// WithCancelable 设置事件是否可取消，默认 true.
func WithCancelable(cancelable bool) DispatchOption {
	return func(i *eventInit) {
		i.cancelable = cancelable
	}
}

// WithBubbles 设置事件是否冒泡.
func WithBubbles(bubbles bool) DispatchOption {
	return func(i *eventInit) {
		i.bubbles = bubbles
	}
}

// WithComposed 设置事件是否穿过 shadow 边界.
func WithComposed(composed bool) DispatchOption {
	return func(i *eventInit) {
		i.composed = composed
	}
}

// WithMeta 设置事件元数据，与 Manager 的默认元数据深度合并.
func WithMeta(meta map[string]any) DispatchOption {
	return func(i *eventInit) {
		i.meta = meta
	}
}

// NewEvent 创建事件.
func NewEvent(name string, detail any, opts ...DispatchOption) *Event {
	ei := newEventInit(opts)
	return newEvent(name, detail, nil, ei)
}

func newEventInit(opts []DispatchOption) *eventInit {
	ei := &eventInit{cancelable: true}
	for _, opt := range opts {
		opt(ei)
	}
	return ei
}

func newEvent(name string, detail any, defaultMeta map[string]any, ei *eventInit) *Event {
	var meta map[string]any
	if len(defaultMeta) > 0 || len(ei.meta) > 0 {
		meta = objects.MergeDeep(defaultMeta, ei.meta)
	}
	return &Event{
		ID:         uuid.NewString(),
		Name:       name,
		Detail:     detail,
		Cancelable: ei.cancelable,
		Bubbles:    ei.bubbles,
		Composed:   ei.composed,
		Meta:       meta,
		Timestamp:  time.Now(),
	}
}
