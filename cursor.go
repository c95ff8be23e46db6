package pallet

import "iter"

// Cursor provides iteration over the valid entities matching a query, in
// ascending id order. A cursor is not safe for concurrent use; each goroutine
// iterates with its own.
type Cursor struct {
	query   QueryNode
	world   *World
	next    int
	current EntityID
}

func newCursor(query QueryNode, world *World) *Cursor {
	return &Cursor{query: query, world: world}
}

// Next advances to the next matching entity, returning false when the
// sequence is exhausted.
func (c *Cursor) Next() bool {
	n := c.world.entities.size()
	for c.next < n {
		id := EntityID(c.next)
		c.next++
		if c.world.entities.isValid(id) && c.query.Evaluate(c.world.entities.maskOf(id)) {
			c.current = id
			return true
		}
	}
	return false
}

// Entity returns a handle for the entity at the cursor position.
func (c *Cursor) Entity() EntityHandle {
	return EntityHandle{world: c.world, id: c.current}
}

// EntityID returns the id at the cursor position.
func (c *Cursor) EntityID() EntityID {
	return c.current
}

// Reset rewinds the cursor to the start of the sequence.
func (c *Cursor) Reset() {
	c.next = 0
}

// TotalMatched counts the matching entities without disturbing the cursor
// position.
func (c *Cursor) TotalMatched() int {
	count := 0
	n := c.world.entities.size()
	for i := 0; i < n; i++ {
		id := EntityID(i)
		if c.world.entities.isValid(id) && c.query.Evaluate(c.world.entities.maskOf(id)) {
			count++
		}
	}
	return count
}

// Entities returns the remaining matches as a lazy forward sequence.
func (c *Cursor) Entities() iter.Seq[EntityHandle] {
	return func(yield func(EntityHandle) bool) {
		for c.Next() {
			if !yield(c.Entity()) {
				return
			}
		}
	}
}
