package core

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosChanEnqueue marks when a value is pushed into a channel.
var HookPosChanEnqueue = &sim.HookPos{Name: "Chan Enqueue"}

// HookPosChanDequeue marks when a value is taken out of a channel.
var HookPosChanDequeue = &sim.HookPos{Name: "Chan Dequeue"}

// A Channel is an unbounded FIFO queue of values. It connects exactly one
// producing machine to one consuming machine.
//
// Channel never blocks. Suspending a machine on an empty channel is the job of
// the machine and the scheduler that drives it. Channel is not safe for
// concurrent use.
type Channel struct {
	sim.HookableBase

	name string
	buf  *linkedlistqueue.Queue

	numEnqueued int
	numDequeued int
}

// NewChannel creates an empty channel.
func NewChannel(name string) *Channel {
	return &Channel{
		name: name,
		buf:  linkedlistqueue.New(),
	}
}

// Name returns the name of the channel.
func (c *Channel) Name() string {
	return c.name
}

// Enqueue appends a value to the tail of the channel. It always succeeds.
func (c *Channel) Enqueue(v int64) {
	c.buf.Enqueue(v)
	c.numEnqueued++

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosChanEnqueue,
		Item:   v,
	})
}

// TryDequeue removes and returns the value at the head of the channel. The
// second return value is false if the channel is empty.
func (c *Channel) TryDequeue() (int64, bool) {
	item, ok := c.buf.Dequeue()
	if !ok {
		return 0, false
	}

	v := item.(int64)
	c.numDequeued++

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosChanDequeue,
		Item:   v,
	})

	return v, true
}

// Len returns the number of values waiting in the channel.
func (c *Channel) Len() int {
	return c.buf.Size()
}

// Empty returns true if no value is waiting.
func (c *Channel) Empty() bool {
	return c.buf.Empty()
}

// Values returns the waiting values from head to tail.
func (c *Channel) Values() []int64 {
	items := c.buf.Values()
	values := make([]int64, len(items))
	for i, item := range items {
		values[i] = item.(int64)
	}

	return values
}

// NumEnqueued returns how many values have ever been pushed.
func (c *Channel) NumEnqueued() int {
	return c.numEnqueued
}

// NumDequeued returns how many values have ever been taken out.
func (c *Channel) NumDequeued() int {
	return c.numDequeued
}
