package synth

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// mixer superimposes scaled repertoire members into a rolling staging
// buffer as directed by a stream of control frames, emitting one frame
// of the running superposition per pull.
//
// Control frames arrive at controlRate Hz against the repertoire's
// sample rate, so samplesPerControl output ticks separate successive
// control pulls. The wait counter carries the fractional remainder, so
// non-integer ratios stay on schedule over time.
type mixer struct {
	rep               *Repertoire
	controls          ControlIterator
	staging           *stagingBuffer
	samplesPerControl float64
	wait              float64
}

func newMixer(rep *Repertoire, controls ControlIterator, controlRate float64) *mixer {
	return &mixer{
		rep:               rep,
		controls:          controls,
		staging:           newStagingBuffer(rep.MaxLen(), rep.Channels()),
		samplesPerControl: rep.SampleRate() / controlRate,
	}
}

// Channels returns the repertoire's shared channel count.
func (m *mixer) Channels() int { return m.rep.Channels() }

// Next emits the frame at the staging cursor, injecting freshly pulled
// activations first when the control schedule is due. An exhausted
// control iterator is fatal to the stream.
func (m *mixer) Next(dst []float64) error {
	if m.wait <= 0 {
		frame, err := m.controls.Next()
		if err != nil {
			return fmt.Errorf("pulling control frame: %w", err)
		}
		m.wait += m.samplesPerControl
		for _, a := range frame {
			m.staging.accumulate(m.rep.At(a.Index).Samples(), a.Coeff)
		}
	}

	m.staging.frame(dst)
	m.wait--
	m.staging.advance()
	return nil
}

// stagingBuffer is a circular accumulation buffer holding the running
// superposition of all currently overlapping member contributions. It
// spans 2N frames for a longest member of N frames, so a member
// injected anywhere in the first half always fits without wrapping; when
// the cursor reaches N the second half rotates into the first. The
// rotation costs O(N) once every N frames, amortizing to O(1) per frame.
//
// Invariant: the frame at cursor position s equals the coefficient-scaled
// sum of every injected member whose extent covers absolute position s.
type stagingBuffer struct {
	data     []float64 // 2*frames*channels interleaved samples
	frames   int       // frames per half
	channels int
	pos      int // frame cursor, always within the first half
}

func newStagingBuffer(frames, channels int) *stagingBuffer {
	return &stagingBuffer{
		data:     make([]float64, 2*frames*channels),
		frames:   frames,
		channels: channels,
	}
}

// accumulate adds coeff*member element-wise starting at the cursor.
// The write may straddle into the second half; that is what the doubled
// buffer is for.
func (b *stagingBuffer) accumulate(member []float64, coeff float64) {
	lo := b.pos * b.channels
	floats.AddScaled(b.data[lo:lo+len(member)], coeff, member)
}

// frame copies the frame at the cursor into dst.
func (b *stagingBuffer) frame(dst []float64) {
	lo := b.pos * b.channels
	copy(dst, b.data[lo:lo+b.channels])
}

// advance moves the cursor one frame, rotating at the half boundary:
// the second half is copied over the first and then zeroed, and the
// cursor returns to the start.
func (b *stagingBuffer) advance() {
	b.pos++
	if b.pos == b.frames {
		half := b.frames * b.channels
		copy(b.data[:half], b.data[half:])
		clear(b.data[half:])
		b.pos = 0
	}
}
