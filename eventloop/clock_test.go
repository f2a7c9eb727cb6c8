package eventloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_Advance(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)

	var fired []string
	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "30") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "10") })
	stopped := c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "20") })

	assert.Equal(t, 3, c.Pending())
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"10"}, fired)
	assert.Equal(t, start.Add(25*time.Millisecond), c.Now())

	c.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"10", "30"}, fired)
	assert.Equal(t, 0, c.Pending())
}

func TestManualClock_NegativeDelay(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	fired := false
	c.AfterFunc(-time.Second, func() { fired = true })

	c.Advance(0)
	assert.True(t, fired)
}

func TestManualClock_CallbackSchedulesTimer(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(10*time.Millisecond, tick)
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(35 * time.Millisecond)
	assert.Equal(t, 3, count)
}

func TestRealClock(t *testing.T) {
	c := RealClock{}
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)

	s := c.AfterFunc(time.Hour, func() {})
	assert.True(t, s.Stop())
}
