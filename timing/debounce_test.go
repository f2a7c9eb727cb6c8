package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tsukikage7/eventkit/eventloop"
)

func newManualLoop(t *testing.T) *eventloop.Loop {
	t.Helper()
	loop := eventloop.New(eventloop.WithClock(eventloop.NewManualClock(time.Unix(0, 0))))
	t.Cleanup(loop.Close)
	return loop
}

func TestDebounce_RunsOnceAfterSilence(t *testing.T) {
	loop := newManualLoop(t)
	calls := 0
	d := Debounce(func() { calls++ }, 100*time.Millisecond, WithLoop(loop))

	for i := 0; i < 3; i++ {
		d.Call()
		loop.Advance(50 * time.Millisecond)
	}
	assert.Equal(t, 0, calls)

	loop.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, calls)

	loop.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestDebounce_Stop(t *testing.T) {
	loop := newManualLoop(t)
	calls := 0
	d := Debounce(func() { calls++ }, 100*time.Millisecond, WithLoop(loop))

	d.Call()
	d.Stop()
	loop.Advance(time.Second)
	assert.Equal(t, 0, calls)

	d.Call()
	loop.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, calls)
}

func TestDebounce_PanicRecovered(t *testing.T) {
	loop := newManualLoop(t)
	d := Debounce(func() { panic("debounced") }, 10*time.Millisecond, WithLoop(loop))

	d.Call()
	assert.NotPanics(t, func() { loop.Advance(10 * time.Millisecond) })
	assert.True(t, loop.Do(func() {}))
}

func TestThrottle_DropsDuringCooldown(t *testing.T) {
	loop := newManualLoop(t)
	calls := 0
	th := Throttle(func() { calls++ }, 100*time.Millisecond, WithLoop(loop))

	th.Call()
	loop.Sync()
	assert.Equal(t, 1, calls)

	th.Call()
	loop.Advance(50 * time.Millisecond)
	th.Call()
	loop.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, calls)

	th.Call()
	loop.Sync()
	assert.Equal(t, 2, calls)
}

func TestThrottle_InvalidDelay(t *testing.T) {
	loop := newManualLoop(t)
	calls := 0
	th := Throttle(func() { calls++ }, -1, WithLoop(loop))

	th.Call()
	loop.Advance(DefaultDelay - time.Millisecond)
	th.Call()
	loop.Advance(time.Millisecond)
	th.Call()
	loop.Sync()

	assert.Equal(t, 2, calls)
}
