// Package noise implements procedural noise sources.
//
// Both generators are pure pull-based producers: each Next call is O(1)
// and touches only the generator's own state, so no internal buffering
// or backpressure is needed.
package noise

import (
	"math/bits"
	"math/rand/v2"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/stat/distuv"
)

// White generates independent standard-normal samples.
type White struct {
	dist distuv.Normal
}

// NewWhite creates a white noise source. src may be nil to use the
// shared global random source. Restarting the sequence means creating a
// new instance with a re-seeded source.
func NewWhite(src rand.Source) *White {
	return &White{dist: distuv.Normal{Mu: 0, Sigma: 1, Src: src}}
}

// Next returns the next sample.
func (w *White) Next() float64 { return w.dist.Rand() }

// Pink generates samples whose power spectral density falls off as 1/f,
// using the Voss-McCartney algorithm: size independently refreshed
// octave values are summed, with octave c refreshed once every 2^(c+1)
// steps so each successive octave contributes energy an octave lower.
//
// The octave sum is maintained incrementally, keeping each step O(1)
// regardless of size. A larger size extends the 1/f spectrum to lower
// frequencies at the cost of setup work only.
type Pink struct {
	dist distuv.Normal

	values []float64 // current octave values
	smooth []float64 // per-step texture, redrawn once per cycle
	source []float64 // replacement draws for the current cycle
	sum    float64   // running sum of values
	idx    int
}

// NewPink creates a pink noise source with the given octave count.
// The caller validates size; it must be at least 1. src may be nil to
// use the shared global random source.
func NewPink(src rand.Source, size int) *Pink {
	p := &Pink{
		dist:   distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		values: make([]float64, size),
		smooth: make([]float64, size),
		source: make([]float64, size),
	}
	p.refill(p.values)
	p.refill(p.smooth)
	p.refill(p.source)
	p.sum = f64.Sum(p.values)
	return p
}

// Next returns the next sample: the current octave sum plus the cycle's
// short-term texture at the cursor. The octave state is then advanced
// for the following call.
func (p *Pink) Next() float64 {
	out := p.sum + p.smooth[p.idx]

	// Advance the cursor. On wrap, draw fresh texture and replacement
	// values for the new cycle but leave the octave values and their
	// sum untouched.
	p.idx++
	if p.idx == len(p.values) {
		p.idx = 0
		p.refill(p.smooth)
		p.refill(p.source)
		return out
	}

	// The trailing zero count of the new cursor selects which octave to
	// refresh: octave c is hit every 2^(c+1) steps, which yields the
	// 1/f spectrum. The sum is patched incrementally.
	c := bits.TrailingZeros(uint(p.idx))
	p.sum += p.source[p.idx] - p.values[c]
	p.values[c] = p.source[p.idx]
	return out
}

func (p *Pink) refill(dst []float64) {
	for i := range dst {
		dst[i] = p.dist.Rand()
	}
}
