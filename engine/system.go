package engine

// System is one stage of a frame. Systems run in registration order and
// may keep their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
