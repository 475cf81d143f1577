package bus

// FrameWriter sends a frame toward its destination identifier.
// Delivery is best-effort; a frame may be dropped on transmit timeout.
type FrameWriter interface {
	WriteFrame(Frame) error
}

// FrameHandler is called when a frame addressed to this participant
// is received.
type FrameHandler interface {
	HandleFrame(Frame)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(Frame)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(frame Frame) {
	f(frame)
}
