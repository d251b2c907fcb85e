package ecs

import "time"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
	timers  []timerCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type timerCommand struct {
	delay time.Duration
	fn    func()
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues a function to run once the frame's structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// After queues fn to run once delay of simulated time has elapsed. The
// countdown starts when the frame is flushed.
func (c *Commands) After(delay time.Duration, fn func()) {
	c.timers = append(c.timers, timerCommand{delay: delay, fn: fn})
}

// Flush applies deletes, then spawns, then deferred functions, and hands
// pending timers to arm. The buffer is reset afterwards.
func (c *Commands) Flush(storage *Storage, arm func(time.Duration, func())) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}
	for _, t := range c.timers {
		if arm != nil {
			arm(t.delay, t.fn)
		}
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
	c.timers = c.timers[:0]
}
