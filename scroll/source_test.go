package scroll

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_ScrollAndNotify(t *testing.T) {
	vp := NewViewport()
	var seen []float64
	sub := vp.Subscribe(func() { seen = append(seen, vp.ScrollY()) })

	vp.ScrollTo(100)
	vp.ScrollBy(-30)
	vp.ScrollBy(0)

	assert.Equal(t, []float64{100, 70, 70}, seen)
	assert.Equal(t, 70.0, vp.ScrollY())

	sub.Unsubscribe()
	sub.Unsubscribe()
	vp.ScrollTo(0)
	assert.Len(t, seen, 3)
	assert.Equal(t, 0, vp.Subscribers())
}

func TestViewport_UnsubscribeKeepsOthers(t *testing.T) {
	vp := NewViewport()
	var a, b, c int
	vp.Subscribe(func() { a++ })
	sb := vp.Subscribe(func() { b++ })
	vp.Subscribe(func() { c++ })

	sb.Unsubscribe()
	vp.ScrollTo(1)

	assert.Equal(t, []int{1, 0, 1}, []int{a, b, c})
}

func TestViewport_UnsubscribeDuringNotify(t *testing.T) {
	vp := NewViewport()
	var sub Subscription
	calls := 0
	sub = vp.Subscribe(func() {
		calls++
		sub.Unsubscribe()
	})

	vp.ScrollTo(1)
	vp.ScrollTo(2)

	assert.Equal(t, 1, calls)
}

func TestViewport_ConcurrentScrollBy(t *testing.T) {
	vp := NewViewport()
	var notified atomic.Int64
	vp.Subscribe(func() { notified.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				vp.ScrollBy(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000.0, vp.ScrollY())
	assert.Equal(t, int64(1000), notified.Load())
}

func TestDefaultViewport_Shared(t *testing.T) {
	assert.Same(t, DefaultViewport(), DefaultViewport())
}
