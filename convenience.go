package synth

import (
	"fmt"
	"math/rand/v2"
)

// WhiteClip renders frames samples of white noise into a mono clip.
func WhiteClip(src rand.Source, frames int, sampleRate float64) (*Clip, error) {
	return RenderClip(White(src), frames, sampleRate)
}

// PinkClip renders frames samples of pink noise into a mono clip.
func PinkClip(src rand.Source, size, frames int, sampleRate float64) (*Clip, error) {
	p, err := Pink(src, size)
	if err != nil {
		return nil, err
	}
	return RenderClip(p, frames, sampleRate)
}

// NoiseRepertoire builds a repertoire of members pink noise clips of
// frames samples each, useful as a self-contained source of raw
// material when no decoded audio is at hand.
func NoiseRepertoire(src rand.Source, members, frames int, sampleRate float64) (*Repertoire, error) {
	if members < 1 {
		return nil, fmt.Errorf("%w: member count must be positive", ErrInvalidConfig)
	}

	rep := &Repertoire{}
	for i := 0; i < members; i++ {
		clip, err := PinkClip(src, DefaultPinkSize, frames, sampleRate)
		if err != nil {
			return nil, err
		}
		if err := rep.Append(clip); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
