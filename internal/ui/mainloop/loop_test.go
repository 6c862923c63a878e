package mainloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsPostedTasksInOrder(t *testing.T) {
	l := NewLoop(8)
	var got []int

	for i := 1; i <= 3; i++ {
		v := i
		require.True(t, l.Post(func() { got = append(got, v) }))
	}
	require.True(t, l.Post(l.Stop))

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.False(t, l.Post(func() {}))
}

func TestLoop_EveryStopsWhenCallbackReturnsFalse(t *testing.T) {
	l := NewLoop(8)
	ticks := 0

	l.Every(time.Millisecond, func() bool {
		ticks++
		if ticks == 3 {
			l.Stop()
			return false
		}
		return true
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))
	assert.Equal(t, 3, ticks)
}

func TestLoop_RunReturnsContextError(t *testing.T) {
	l := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, l.Run(context.Background()), ErrStopped)
}

func TestManualScheduler_TickAndCancel(t *testing.T) {
	s := NewManualScheduler()
	a, b := 0, 0

	s.Every(time.Millisecond, func() bool { a++; return a < 3 })
	cancel := s.Every(time.Millisecond, func() bool { b++; return true })

	assert.Equal(t, 2, s.Tick())
	cancel()
	cancel()

	ticks := s.Drain(10)

	assert.Equal(t, 2, ticks)
	assert.Equal(t, 3, a)
	assert.Equal(t, 1, b)
	assert.Zero(t, s.Pending())
}
