package engine

// InputSystem applies the frame's events to the active piece before gravity
// runs. Rotation is always accepted. Sideways moves are ignored unless
// AllowMoves is set.
type InputSystem struct {
	AllowMoves bool
}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	state := frame.State
	for _, ev := range frame.Events {
		if state.Quit {
			return
		}
		switch ev {
		case EventQuit:
			state.Quit = true
		case EventRotate:
			state.Active.Rotate()
		case EventMoveLeft:
			if s.AllowMoves {
				shift(state, Left)
			}
		case EventMoveRight:
			if s.AllowMoves {
				shift(state, Right)
			}
		}
	}
}

// shift moves the active piece one column in dir unless the field blocks it.
func shift(state *State, dir Direction) {
	piece := &state.Active
	prev := piece.Position
	piece.Position = prev.Add(dir.Delta())
	if state.Field.Collides(piece, dir) {
		piece.Position = prev
	}
}

// GravitySystem accumulates frame time and drops the active piece one row
// each time the tick interval is exceeded. A piece that cannot drop is
// queued for lock-in and replaced.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	state := frame.State
	if state.Quit || state.Phase != Falling {
		return
	}

	state.Elapsed += frame.DeltaTime
	if state.Elapsed <= state.Interval {
		return
	}
	state.Elapsed = 0
	state.Ticks++

	piece := &state.Active
	piece.Position.Y++

	collide := state.Field.Collides(piece, Down)
	if collide || piece.Position.Y+piece.Bounds().MaxRow > FieldHeight-1 {
		piece.Position.Y--
		state.Phase = Locking
		frame.Commands.Lock(*piece)
		frame.Commands.Spawn()
	}
}
