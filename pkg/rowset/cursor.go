// Package rowset provides the pull cursor that streams fetched provider
// rows back to a consumer in fixed-size batches.
//
// Fetching is eager: a provider buffers every row of a query before the
// cursor is handed out, so the cursor itself never performs I/O. This is
// a bulk pull-then-stream design, not an incremental stream.
package rowset

// Cursor is a finite, forward-only sequence of rows consumed in batches.
//
// A Cursor is owned by a single query execution and is not safe for
// concurrent use. Reset restarts it from the first row.
type Cursor[T any] struct {
	rows []T
	pos  int
}

// NewCursor wraps an already-buffered, ordered row slice.
// The cursor takes ownership of rows; callers must not mutate it after.
func NewCursor[T any](rows []T) *Cursor[T] {
	return &Cursor[T]{rows: rows}
}

// Next returns up to n rows starting at the current position and reports
// whether the cursor is exhausted after this batch. Once exhausted it
// keeps returning an empty batch with done=true. n below 1 is treated
// as 1.
func (c *Cursor[T]) Next(n int) (batch []T, done bool) {
	if n < 1 {
		n = 1
	}
	if c.pos >= len(c.rows) {
		return nil, true
	}
	end := min(c.pos+n, len(c.rows))
	batch = c.rows[c.pos:end]
	c.pos = end
	return batch, c.pos >= len(c.rows)
}

// Reset moves the cursor back to the first row.
func (c *Cursor[T]) Reset() {
	c.pos = 0
}

// Len returns the total number of buffered rows.
func (c *Cursor[T]) Len() int {
	return len(c.rows)
}

// Remaining returns how many rows have not been returned yet.
func (c *Cursor[T]) Remaining() int {
	return len(c.rows) - c.pos
}

// All returns the full buffered row slice regardless of cursor position.
// Consumers that want everything at once (the JSON API) use this instead
// of batching.
func (c *Cursor[T]) All() []T {
	return c.rows
}
