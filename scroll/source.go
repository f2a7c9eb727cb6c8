package scroll

import "sync"

// Source 可滚动的根，例如窗口或容器.
type Source interface {
	// ScrollY 返回当前垂直滚动位置.
	ScrollY() float64
	// Subscribe 注册滚动通知，返回的 Subscription 用于取消.
	Subscribe(fn func()) Subscription
}

// Subscription 滚动通知的订阅.
type Subscription interface {
	Unsubscribe()
}

// Viewport 内存中的滚动根，并发安全.
//
// 每次 ScrollTo/ScrollBy 都会在调用方 goroutine 上同步通知订阅者，
// 位置没有变化时同样通知.
type Viewport struct {
	mu     sync.RWMutex
	y      float64
	nextID uint64
	subs   []*viewportSub
}

type viewportSub struct {
	vp *Viewport
	id uint64
	fn func()
}

// NewViewport 创建位置为 0 的滚动根.
func NewViewport() *Viewport {
	return &Viewport{}
}

var (
	defaultViewport     *Viewport
	defaultViewportOnce sync.Once
)

// DefaultViewport 返回进程级的默认滚动根.
func DefaultViewport() *Viewport {
	defaultViewportOnce.Do(func() {
		defaultViewport = NewViewport()
	})
	return defaultViewport
}

// ScrollY 返回当前位置.
func (v *Viewport) ScrollY() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.y
}

// ScrollTo 滚动到 y 并通知订阅者.
func (v *Viewport) ScrollTo(y float64) {
	v.update(func(float64) float64 { return y })
}

// ScrollBy 相对滚动 dy.
func (v *Viewport) ScrollBy(dy float64) {
	v.update(func(y float64) float64 { return y + dy })
}

func (v *Viewport) update(move func(float64) float64) {
	v.mu.Lock()
	v.y = move(v.y)
	subs := make([]*viewportSub, len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

// Subscribe 注册滚动通知.
func (v *Viewport) Subscribe(fn func()) Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	s := &viewportSub{vp: v, id: v.nextID, fn: fn}
	v.subs = append(v.subs, s)
	return s
}

// Subscribers 返回当前订阅数.
func (v *Viewport) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

// Unsubscribe 取消订阅，可重复调用.
func (s *viewportSub) Unsubscribe() {
	v := s.vp
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, other := range v.subs {
		if other.id == s.id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}
