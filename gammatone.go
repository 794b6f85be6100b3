package synth

import (
	"fmt"
	"math"
)

// Default gammatone envelope order.
const DefaultToneOrder = 4

// Tone evaluates a parametric tone at time t, in seconds.
type Tone func(t float64) float64

// ERB returns the equivalent rectangular bandwidth of frequency f in Hz.
func ERB(f float64) float64 { return 0.1039*f + 24.7 }

// Gammachirp returns a gammatone with a frequency asymmetry: a cosine
// carrier at centerFreq Hz bent by chirp*log(t), under a gamma envelope
// of the given order whose duration is set by bandwidth. Passing a
// non-positive bandwidth uses ERB(centerFreq). phase offsets the
// carrier within the envelope.
//
// The generated tones have unit amplitude; rescale the output to use a
// different one.
func Gammachirp(centerFreq, bandwidth, chirp float64, order int, phase float64) Tone {
	if bandwidth <= 0 {
		bandwidth = ERB(centerFreq)
	}
	return func(t float64) float64 {
		bend := 0.0
		if chirp > 0 {
			bend = chirp * math.Log(t)
		}
		osc := math.Cos(tau*centerFreq*t + phase + bend)
		env := math.Exp(-tau * bandwidth * t)
		return math.Pow(t, float64(order-1)) * env * osc
	}
}

// Gammatone returns a sinusoid at centerFreq Hz under a gamma envelope:
// a Gammachirp without the chirp term.
func Gammatone(centerFreq, bandwidth float64, order int, phase float64) Tone {
	return Gammachirp(centerFreq, bandwidth, 0, order, phase)
}

// ToneClip renders frames samples of tone into a mono clip. Sampling
// starts at t = 1/sampleRate rather than zero so chirped tones, whose
// log-time bend diverges at t = 0, stay finite.
func ToneClip(tone Tone, frames int, sampleRate float64) (*Clip, error) {
	if frames < 1 {
		return nil, fmt.Errorf("%w: frame count must be positive", ErrInvalidClip)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrInvalidClip)
	}

	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = tone(float64(i+1) / sampleRate)
	}
	return NewClip(samples, monoChannels, sampleRate, BitDepthFloat)
}
