package synth

import (
	"fmt"
	"math/rand/v2"

	"github.com/tphakala/go-audio-synth/internal/noise"
)

// White returns an endless stream of independent standard-normal
// samples. src may be nil to use the shared global random source;
// passing a seeded source makes the sequence deterministic.
func White(src rand.Source) SampleStream {
	return noise.NewWhite(src)
}

// Pink returns an endless stream of 1/f (pink) noise built from size
// octave values via the Voss-McCartney algorithm. A larger size renders
// low frequencies with a more accurate power spectrum; DefaultPinkSize
// is a reasonable starting point. src may be nil to use the shared
// global random source.
func Pink(src rand.Source, size int) (SampleStream, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: pink noise size must be at least 1", ErrInvalidConfig)
	}
	return noise.NewPink(src, size), nil
}
