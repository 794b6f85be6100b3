package synth

// SampleStream produces an endless sequence of scalar samples.
// Implementations are pull-based: no work happens until Next is called,
// and each call mutates only the stream's own internal state.
type SampleStream interface {
	// Next returns the next sample in the sequence.
	Next() float64
}

// FrameStream produces an endless sequence of audio frames.
// A frame holds one sample per channel.
type FrameStream interface {
	// Next fills dst with the next frame. len(dst) must be at least
	// Channels(). The stream never terminates on its own; a consumer
	// cancels by no longer calling Next.
	Next(dst []float64) error

	// Channels returns the number of samples per frame.
	Channels() int
}

// ReadSamples pulls n samples from s into a new slice.
func ReadSamples(s SampleStream, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// ReadFrames pulls n frames from s into a new interleaved slice.
// It returns the frames read so far alongside the first error reported
// by the stream.
func ReadFrames(s FrameStream, n int) ([]float64, error) {
	channels := s.Channels()
	out := make([]float64, 0, n*channels)
	frame := make([]float64, channels)
	for i := 0; i < n; i++ {
		if err := s.Next(frame); err != nil {
			return out, err
		}
		out = append(out, frame...)
	}
	return out, nil
}
