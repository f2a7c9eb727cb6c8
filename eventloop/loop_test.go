package eventloop

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Tsukikage7/eventkit/logger"
)

// LoopTestSuite 事件循环测试套件.
type LoopTestSuite struct {
	suite.Suite
	clock *ManualClock
	loop  *Loop
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopTestSuite))
}

func (s *LoopTestSuite) SetupTest() {
	s.clock = NewManualClock(time.Unix(0, 0))
	s.loop = New(WithName("test"), WithClock(s.clock))
}

func (s *LoopTestSuite) TearDownTest() {
	s.loop.Close()
}

func (s *LoopTestSuite) TestPost_FIFO() {
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		s.True(s.loop.Post(func() { got = append(got, i) }))
	}
	s.loop.Sync()

	s.Require().Len(got, 100)
	for i, v := range got {
		s.Equal(i, v)
	}
}

func (s *LoopTestSuite) TestPost_Nil() {
	s.False(s.loop.Post(nil))
}

func (s *LoopTestSuite) TestPost_Reentrant() {
	var got []string
	s.loop.Do(func() {
		got = append(got, "outer")
		s.loop.Post(func() { got = append(got, "inner") })
	})
	s.loop.Sync()

	s.Equal([]string{"outer", "inner"}, got)
}

func (s *LoopTestSuite) TestPost_ConcurrentProducers() {
	var (
		wg    sync.WaitGroup
		count int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.loop.Post(func() { count++ })
			}
		}()
	}
	wg.Wait()
	s.loop.Sync()

	s.Equal(400, count)
}

func (s *LoopTestSuite) TestAfterFunc_FiresOnAdvance() {
	fired := 0
	s.loop.AfterFunc(100*time.Millisecond, func() { fired++ })

	s.loop.Advance(99 * time.Millisecond)
	s.Equal(0, fired)

	s.loop.Advance(time.Millisecond)
	s.Equal(1, fired)

	s.loop.Advance(time.Second)
	s.Equal(1, fired)
}

func (s *LoopTestSuite) TestAfterFunc_Stop() {
	fired := false
	var t *Timer
	s.loop.Do(func() {
		t = s.loop.AfterFunc(50*time.Millisecond, func() { fired = true })
	})

	s.True(t.Stop())
	s.False(t.Stop())
	s.loop.Advance(time.Second)

	s.False(fired)
	s.Equal(0, s.clock.Pending())
}

func (s *LoopTestSuite) TestAfterFunc_StopAfterFire() {
	var t *Timer
	s.loop.Do(func() {
		t = s.loop.AfterFunc(10*time.Millisecond, func() {})
	})
	s.loop.Advance(10 * time.Millisecond)

	s.False(t.Stop())
}

func (s *LoopTestSuite) TestAfterFunc_StopDropsQueuedCallback() {
	// 定时器已到期且回调已入队，但在执行前被 Stop.
	fired := false
	var t *Timer
	s.loop.Do(func() {
		t = s.loop.AfterFunc(10*time.Millisecond, func() { fired = true })
	})

	block := make(chan struct{})
	s.loop.Post(func() {
		<-block
		t.Stop()
	})
	s.clock.Advance(10 * time.Millisecond)
	close(block)
	s.loop.Sync()

	s.False(fired)
}

func (s *LoopTestSuite) TestAdvance_NestedTimersUseAdvancedTime() {
	var at []time.Duration
	start := s.clock.Now()
	s.loop.Do(func() {
		s.loop.AfterFunc(100*time.Millisecond, func() {
			at = append(at, s.clock.Now().Sub(start))
			s.loop.AfterFunc(100*time.Millisecond, func() {
				at = append(at, s.clock.Now().Sub(start))
			})
		})
	})

	s.loop.Advance(250 * time.Millisecond)

	s.Equal([]time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, at)
	s.Equal(250*time.Millisecond, s.clock.Now().Sub(start))
}

func (s *LoopTestSuite) TestAdvance_SameDeadlineKeepsCreationOrder() {
	var got []string
	s.loop.Do(func() {
		s.loop.AfterFunc(50*time.Millisecond, func() { got = append(got, "a") })
		s.loop.AfterFunc(50*time.Millisecond, func() { got = append(got, "b") })
		s.loop.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	})

	s.loop.Advance(50 * time.Millisecond)

	s.Equal([]string{"c", "a", "b"}, got)
}

func (s *LoopTestSuite) TestPanicRecovered() {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&logger.Config{Level: logger.LevelDebug, Format: logger.FormatJSON}, &buf)
	s.Require().NoError(err)

	loop := New(WithName("panicky"), WithLogger(log))
	defer loop.Close()

	ran := false
	loop.Post(func() { panic("boom") })
	loop.Post(func() { ran = true })
	loop.Sync()

	s.True(ran)
	s.Contains(buf.String(), "[EventLoop]")
	s.Contains(buf.String(), "boom")
}

func TestClose_DrainsAndRejects(t *testing.T) {
	loop := New()

	count := 0
	for i := 0; i < 10; i++ {
		loop.Post(func() { count++ })
	}
	loop.Close()

	assert.Equal(t, 10, count)
	assert.False(t, loop.Post(func() {}))
	assert.False(t, loop.Do(func() {}))
	assert.NotPanics(t, loop.Close)
}

func TestRealClock_AfterFunc(t *testing.T) {
	loop := New()
	defer loop.Close()

	var mu sync.Mutex
	fired := false
	loop.AfterFunc(10*time.Millisecond, func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired
	}, time.Second, 5*time.Millisecond)
}

func TestAdvance_RequiresManualClock(t *testing.T) {
	loop := New()
	defer loop.Close()

	assert.Panics(t, func() { loop.Advance(time.Second) })
}

func TestDefault_Shared(t *testing.T) {
	a := Default()
	b := Default()

	assert.Same(t, a, b)
	assert.True(t, a.Do(func() {}))
}
