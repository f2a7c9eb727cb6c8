package eventloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueue_GrowAndShrink(t *testing.T) {
	q := newTaskQueue()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		q.push(func() { got = append(got, i) })
	}
	assert.Equal(t, 100, q.len())
	assert.Equal(t, 128, len(q.buf))

	for i := 0; i < 95; i++ {
		task, ok := q.pop()
		require.True(t, ok)
		task()
	}
	assert.Equal(t, 5, q.len())
	assert.Less(t, len(q.buf), 128)

	for {
		task, ok := q.pop()
		if !ok {
			break
		}
		task()
	}

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestTaskQueue_Wraparound(t *testing.T) {
	q := newTaskQueue()
	next := 0
	var got []int

	// 交替进出，使 head 越过缓冲区末尾.
	for round := 0; round < 10; round++ {
		for i := 0; i < 10; i++ {
			n := next
			next++
			q.push(func() { got = append(got, n) })
		}
		for i := 0; i < 7; i++ {
			task, ok := q.pop()
			require.True(t, ok)
			task()
		}
	}
	for q.len() > 0 {
		task, _ := q.pop()
		task()
	}

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestTaskQueue_PopEmpty(t *testing.T) {
	task, ok := newTaskQueue().pop()
	assert.False(t, ok)
	assert.Nil(t, task)
}
