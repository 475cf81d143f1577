package bus

// Tee returns a FrameWriter that writes every frame to primary and
// mirrors it to taps. A tap failure never fails the write.
func Tee(primary FrameWriter, taps ...FrameWriter) FrameWriter {
	return &teeWriter{primary: primary, taps: taps}
}

type teeWriter struct {
	primary FrameWriter
	taps    []FrameWriter
}

func (t *teeWriter) WriteFrame(f Frame) error {
	err := t.primary.WriteFrame(f)
	for _, tap := range t.taps {
		tap.WriteFrame(f)
	}
	return err
}
