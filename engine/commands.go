package engine

// Commands buffers state changes that must not happen while systems are
// still reading the active piece. They are applied by Flush at the end of
// the frame: locks first, then spawns, then deferred functions.
type Commands struct {
	locks  []Piece
	spawns int
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Lock queues piece to be merged into the field. The piece is taken by
// value; the caller must not keep using it as the active piece.
func (c *Commands) Lock(piece Piece) {
	c.locks = append(c.locks, piece.Copy())
}

// Spawn queues the replacement of the active piece with a random one.
func (c *Commands) Spawn() {
	c.spawns++
}

// Defer queues fn to run after the other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether anything is queued.
func (c *Commands) Pending() bool {
	return len(c.locks) > 0 || c.spawns > 0 || len(c.defers) > 0
}

// Flush applies all queued commands to state and resets the buffer.
func (c *Commands) Flush(state *State) {
	for _, piece := range c.locks {
		state.lock(piece)
	}

	for i := 0; i < c.spawns; i++ {
		state.spawnPiece()
	}

	for _, fn := range c.defers {
		fn()
	}

	c.locks = c.locks[:0]
	c.spawns = 0
	c.defers = c.defers[:0]
}
