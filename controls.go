package synth

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Activation asks the mixer to inject one repertoire member, scaled by
// a non-negative coefficient, at the tick the frame was pulled.
type Activation struct {
	// Index is the 0-based repertoire position of the member.
	Index int

	// Coeff is the amplitude applied to the member's samples.
	Coeff float64
}

// ControlFrame is the possibly empty set of activations for one control
// tick. Frames are immutable once yielded.
type ControlFrame []Activation

// ControlIterator supplies control frames to a mixer, one per tick.
type ControlIterator interface {
	// Next returns the next control frame. A finite iterator reports
	// ErrControlsExhausted once it runs out.
	Next() (ControlFrame, error)
}

// controlSource draws stochastic control frames over a repertoire of n
// members. Despite the original system documenting a Laplace
// distribution, coefficients are exponentially distributed; the
// behavior is kept as observed.
type controlSource struct {
	dist     distuv.Exponential
	members  int
	minCoeff float64
}

func newControlSource(members int, scale, minCoeff float64, src rand.Source) *controlSource {
	return &controlSource{
		// distuv parameterizes by rate; the requested scale is the mean.
		dist:     distuv.Exponential{Rate: 1 / scale, Src: src},
		members:  members,
		minCoeff: minCoeff,
	}
}

// Next draws one coefficient per member and keeps those above the
// threshold. It never fails; the error return satisfies
// ControlIterator.
func (c *controlSource) Next() (ControlFrame, error) {
	var frame ControlFrame
	for i := 0; i < c.members; i++ {
		if coeff := c.dist.Rand(); coeff > c.minCoeff {
			frame = append(frame, Activation{Index: i, Coeff: coeff})
		}
	}
	return frame, nil
}

// ControlList returns a finite control iterator over a fixed frame
// sequence. Pulling past the last frame fails with
// ErrControlsExhausted, which a mixer surfaces to its consumer.
func ControlList(frames ...ControlFrame) ControlIterator {
	return &controlList{frames: frames}
}

type controlList struct {
	frames []ControlFrame
	pos    int
}

func (c *controlList) Next() (ControlFrame, error) {
	if c.pos == len(c.frames) {
		return nil, ErrControlsExhausted
	}
	frame := c.frames[c.pos]
	c.pos++
	return frame, nil
}
