// Package scroll 提供滚动阶段观察器.
//
// Observer 订阅滚动根的滚动通知，把连续滚动划分为 start、mid、end 三个阶段，
// 每个阶段附带当前位置和相对上一阶段的方向.
//
// 示例:
//
//	vp := scroll.NewViewport()
//	obs := scroll.New(scroll.WithRoot(vp), scroll.WithDelay(100*time.Millisecond))
//	defer obs.Destroy()
//
//	obs.OnScrollPhase(scroll.PhaseEnd, scroll.NewListener(func(e scroll.Event) {
//	    fmt.Println("stopped at", e.Position)
//	}))
package scroll

import (
	"runtime/debug"
	"sync"

	"github.com/Tsukikage7/eventkit/eventloop"
	"github.com/Tsukikage7/eventkit/metrics"
	"github.com/Tsukikage7/eventkit/timing"
)

// Observer 滚动阶段观察器.
type Observer struct {
	opts      *options
	root      Source
	flattener *timing.Flattener
	sub       Subscription

	mu        sync.RWMutex
	listeners map[Phase][]*Listener

	// 只在事件循环上访问
	baseline  float64
	destroyed bool

	destroyOnce sync.Once
}

// New 创建观察器并开始监听滚动根.
func New(opts ...Option) *Observer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.root == nil {
		o.root = DefaultViewport()
	}
	if o.loop == nil {
		o.loop = eventloop.Default()
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}

	obs := &Observer{
		opts:      o,
		root:      o.root,
		listeners: make(map[Phase][]*Listener),
	}
	obs.baseline = obs.root.ScrollY()
	obs.flattener = timing.Flatten(timing.Handlers{
		Start: obs.handle,
		Mid:   obs.handle,
		End:   obs.handle,
	}, o.delay,
		timing.WithName("scroll"),
		timing.WithLoop(o.loop),
		timing.WithLogger(o.logger),
		timing.WithMetrics(o.metrics),
	)
	obs.sub = obs.root.Subscribe(obs.flattener.Trigger)

	obs.logDebugf("observing root, delay=%s baseline=%v", o.delay, obs.baseline)
	return obs
}

// OnScrollPhase 注册阶段监听器.
//
// 同一监听器可重复注册，每次注册都会被调用一次. 未知阶段被忽略.
func (o *Observer) OnScrollPhase(phase Phase, l *Listener) {
	if !phase.Valid() {
		o.logWarnf("ignoring listener for unknown phase %q", phase)
		return
	}
	if l == nil || l.fn == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners[phase] = append(o.listeners[phase], l)
}

// RemoveScrollPhase 移除阶段中第一个匹配的监听器，不存在时什么也不做.
func (o *Observer) RemoveScrollPhase(phase Phase, l *Listener) {
	o.mu.Lock()
	defer o.mu.Unlock()

	list := o.listeners[phase]
	for i, other := range list {
		if other == l {
			o.listeners[phase] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Destroy 停止监听滚动根，可重复调用.
//
// 默认情况下销毁前已开始的滚动仍会收到 end 阶段，
// 使用 WithCancelOnDestroy(true) 可以取消.
func (o *Observer) Destroy() {
	o.destroyOnce.Do(func() {
		o.sub.Unsubscribe()
		if o.opts.cancelOnDestroy {
			// 取消订阅前已复制订阅列表的通知仍可能投递 Trigger
			o.opts.loop.Post(func() { o.destroyed = true })
			o.flattener.Stop()
		}
		o.logDebugf("destroyed, cancel pending=%v", o.opts.cancelOnDestroy)
	})
}

// handle 在事件循环上分发阶段事件.
func (o *Observer) handle(p timing.Phase) {
	if o.destroyed {
		return
	}
	position := o.root.ScrollY()
	event := Event{
		Position:  position,
		Direction: directionOf(position, o.baseline),
		Phase:     Phase(p),
	}

	o.mu.RLock()
	targets := make([]*Listener, 0, len(o.listeners[event.Phase])+len(o.listeners[PhaseScroll]))
	targets = append(targets, o.listeners[event.Phase]...)
	targets = append(targets, o.listeners[PhaseScroll]...)
	o.mu.RUnlock()

	o.opts.metrics.Counter("scroll_events_total", map[string]string{
		"phase":     string(event.Phase),
		"direction": event.Direction.String(),
	})
	if g, ok := o.opts.metrics.(metrics.Gauger); ok {
		g.Gauge("scroll_position", position, map[string]string{"phase": string(event.Phase)})
	}

	for _, l := range targets {
		o.call(l, event)
	}

	o.baseline = o.root.ScrollY()
}

func (o *Observer) call(l *Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			o.logErrorf("%s listener panic: %v\n%s", e.Phase, r, debug.Stack())
		}
	}()
	l.fn(e)
}

// 日志辅助方法.

func (o *Observer) logDebugf(format string, args ...any) {
	if log := o.opts.logger; log != nil {
		log.Debugf("[ScrollObserver] "+format, args...)
	}
}

func (o *Observer) logWarnf(format string, args ...any) {
	if log := o.opts.logger; log != nil {
		log.Warnf("[ScrollObserver] "+format, args...)
	}
}

func (o *Observer) logErrorf(format string, args ...any) {
	if log := o.opts.logger; log != nil {
		log.Errorf("[ScrollObserver] "+format, args...)
	}
}
