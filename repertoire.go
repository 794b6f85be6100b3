package synth

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Common errors returned by the synthesis engine.
var (
	// ErrInvalidConfig indicates invalid synthesis parameters.
	ErrInvalidConfig = errors.New("invalid synthesis configuration")

	// ErrInvalidClip indicates a malformed clip.
	ErrInvalidClip = errors.New("invalid clip")

	// ErrHeterogeneousClip indicates a clip whose rate, channel count or
	// bit depth does not match the repertoire.
	ErrHeterogeneousClip = errors.New("clip does not match repertoire")

	// ErrEmptyRepertoire indicates a synthesis request on a repertoire
	// with no members.
	ErrEmptyRepertoire = errors.New("repertoire is empty")

	// ErrControlsExhausted indicates that a mixer's control stream ran
	// out while output was still being pulled.
	ErrControlsExhausted = errors.New("control stream exhausted")
)

// Repertoire is an ordered, validated collection of clips used as raw
// material for chaining and mixing. All members share the same sample
// rate, channel count and bit depth; the shared properties are fixed by
// the first clip admitted and enforced on every later insertion.
//
// The repertoire owns its member list but only borrows the clips.
// Insertion order is preserved; it has no meaning to the synthesis
// algorithms beyond providing stable indices for control frames.
type Repertoire struct {
	clips      []*Clip
	channels   int
	sampleRate float64
	bitDepth   int
	maxLen     int
}

// NewRepertoire creates a repertoire from clips, validating homogeneity.
// It fails on the first clip that does not match the properties of the
// first; no clip after the offending one is admitted.
func NewRepertoire(clips ...*Clip) (*Repertoire, error) {
	r := &Repertoire{}
	if err := r.Extend(clips...); err != nil {
		return nil, err
	}
	return r, nil
}

// Append admits one clip into the repertoire.
// The first clip fixes the repertoire's shared sample rate, channel
// count and bit depth; every later clip is validated against them before
// being added, so a failed Append leaves the repertoire unchanged.
func (r *Repertoire) Append(c *Clip) error {
	if c == nil {
		return fmt.Errorf("%w: nil clip", ErrInvalidClip)
	}

	if len(r.clips) == 0 {
		r.channels = c.Channels()
		r.sampleRate = c.SampleRate()
		r.bitDepth = c.BitDepth()
	}

	pos := len(r.clips)
	if c.BitDepth() != r.bitDepth {
		return fmt.Errorf("%w: clip %d: bit depth %d is not %d",
			ErrHeterogeneousClip, pos, c.BitDepth(), r.bitDepth)
	}
	if c.Channels() != r.channels {
		return fmt.Errorf("%w: clip %d: frame shape %d is not %d",
			ErrHeterogeneousClip, pos, c.Channels(), r.channels)
	}
	if c.SampleRate() != r.sampleRate {
		return fmt.Errorf("%w: clip %d: sample rate %g is not %g",
			ErrHeterogeneousClip, pos, c.SampleRate(), r.sampleRate)
	}

	r.clips = append(r.clips, c)
	if c.Len() > r.maxLen {
		r.maxLen = c.Len()
	}
	return nil
}

// Extend admits clips in order, stopping at the first mismatch.
func (r *Repertoire) Extend(clips ...*Clip) error {
	for _, c := range clips {
		if err := r.Append(c); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of member clips.
func (r *Repertoire) Len() int { return len(r.clips) }

// At returns member i in insertion order.
func (r *Repertoire) At(i int) *Clip { return r.clips[i] }

// Channels returns the shared channel count of all members.
func (r *Repertoire) Channels() int { return r.channels }

// SampleRate returns the shared sample rate of all members, in Hz.
func (r *Repertoire) SampleRate() float64 { return r.sampleRate }

// BitDepth returns the shared source bit depth of all members.
func (r *Repertoire) BitDepth() int { return r.bitDepth }

// MaxLen returns the frame count of the longest member.
func (r *Repertoire) MaxLen() int { return r.maxLen }

// Chain returns an endless stream that plays randomly chosen members
// back to back, crossfading each into the next over the trailing
// overlap proportion of the outgoing member. See Chain for the blend
// semantics.
//
// overlap must lie in [0, 1]. It must also be large enough, relative to
// member lengths, that a crossfade target is always queued before the
// active member runs out; an overlap of zero leaves the chain with
// nowhere to go and is treated as a contract violation when reached.
// src may be nil to use the shared global random source.
func (r *Repertoire) Chain(overlap float64, src rand.Source) (FrameStream, error) {
	if len(r.clips) == 0 {
		return nil, fmt.Errorf("%w: chain needs at least one clip", ErrEmptyRepertoire)
	}
	if overlap < 0 || overlap > 1 {
		return nil, fmt.Errorf("%w: overlap %g outside [0, 1]", ErrInvalidConfig, overlap)
	}
	return newChain(r, overlap, src), nil
}

// Controls returns an endless control-signal generator over the
// repertoire. Each tick draws one coefficient per member from an
// exponential distribution with mean scale and keeps the members whose
// coefficient exceeds minCoeff; ticks may come up empty.
//
// scale must be positive and minCoeff non-negative. src may be nil to
// use the shared global random source.
func (r *Repertoire) Controls(scale, minCoeff float64, src rand.Source) (ControlIterator, error) {
	if len(r.clips) == 0 {
		return nil, fmt.Errorf("%w: controls need at least one clip", ErrEmptyRepertoire)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("%w: control scale must be positive", ErrInvalidConfig)
	}
	if minCoeff < 0 {
		return nil, fmt.Errorf("%w: minimum coefficient must be non-negative", ErrInvalidConfig)
	}
	return newControlSource(len(r.clips), scale, minCoeff, src), nil
}

// Mix returns an endless stream that superimposes scaled copies of
// repertoire members as directed by controls, pulled at controlRate
// frames per second against the repertoire's sample rate.
//
// The stream fails with ErrControlsExhausted if controls runs out while
// output is still being pulled; generators built by Controls never run
// out.
func (r *Repertoire) Mix(controls ControlIterator, controlRate float64) (FrameStream, error) {
	if len(r.clips) == 0 {
		return nil, fmt.Errorf("%w: mix needs at least one clip", ErrEmptyRepertoire)
	}
	if controls == nil {
		return nil, fmt.Errorf("%w: control iterator is nil", ErrInvalidConfig)
	}
	if controlRate <= 0 {
		return nil, fmt.Errorf("%w: control rate must be positive", ErrInvalidConfig)
	}
	return newMixer(r, controls, controlRate), nil
}
