package mainloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queuePost(queue *[]func()) func(func()) bool {
	return func(fn func()) bool {
		*queue = append(*queue, fn)
		return true
	}
}

func TestCoalescer_MergesBurstIntoSingleTask(t *testing.T) {
	var queue []func()
	c := NewCoalescer(queuePost(&queue))

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("config-reload", func() { value = v })
	}

	require.Len(t, queue, 1)
	assert.Equal(t, 1, c.Pending())
	queue[0]()

	assert.Equal(t, 5, value)
	assert.Zero(t, c.Pending())
}

func TestCoalescer_KeysAreIndependent(t *testing.T) {
	var queue []func()
	c := NewCoalescer(queuePost(&queue))

	c.Post("config-reload", func() {})
	c.Post("render", func() {})

	assert.Len(t, queue, 2)
}

func TestCoalescer_DropsWorkAfterDestroy(t *testing.T) {
	var queue []func()
	c := NewCoalescer(queuePost(&queue))

	ran := false
	c.Post("render", func() { ran = true })
	c.Destroy()

	require.Len(t, queue, 1)
	queue[0]()
	assert.False(t, ran)

	c.Post("render", func() { ran = true })
	assert.Len(t, queue, 1)
}

func TestCoalescer_RejectedPostClearsPending(t *testing.T) {
	c := NewCoalescer(func(func()) bool { return false })

	c.Post("render", func() {})

	assert.Zero(t, c.Pending())
}

func TestNewCoalescer_PanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() { _ = NewCoalescer(nil) })
}
