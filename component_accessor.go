package pallet

// GetFromCursor retrieves the component instance for the entity at the cursor
// position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.GetFromEntity(cursor.Entity())
}

// GetFromCursorSafe retrieves the component at the cursor position, checking
// occupancy first. Returns a boolean indicating success and the component
// pointer if found.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if c.Has(cursor.Entity()) {
		return true, c.GetFromCursor(cursor)
	}
	return false, nil
}

// CheckCursor reports whether the entity at the cursor position carries the
// component.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return c.Has(cursor.Entity())
}
