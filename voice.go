package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default voice model parameters.
const (
	// DefaultFundamental is the default glottal fundamental in Hz.
	DefaultFundamental = 200.0

	// DefaultWindowMsec is the default synthesis window length in
	// milliseconds.
	DefaultWindowMsec = 30.0
)

// Spectrum weights applied when combining source and filter.
const (
	voiceSourceWeight = 2.0
	voiceFilterWeight = 1.0
)

const tau = 2 * math.Pi

// Formant is one resonance of the vocal tract filter.
type Formant struct {
	// Amplitude is the peak height of the resonance.
	Amplitude float64

	// Center is the resonance frequency in Hz.
	Center float64

	// Bandwidth is the Gaussian width of the resonance in Hz.
	Bandwidth float64
}

// FormantSource supplies, one synthesis frame at a time, a source
// bandwidth and the formants shaping that frame.
type FormantSource interface {
	Next() (bandwidth float64, formants []Formant)
}

// Voice is a crude source-filter model for speech-like synthesis. Each
// frame multiplies a harmonic source spectrum by a Gaussian formant
// filter spectrum, converts the product to the time domain with an
// inverse real FFT, applies a Hann window and joins successive frames
// by 50% overlap-add.
type Voice struct {
	fundamental float64
	sampleRate  float64
	nyquist     float64
	bins        int // spectrum bins per frame
	win         []float64
	fft         *fourier.FFT
}

// NewVoice creates a voice model. fundamental and sampleRate are in Hz,
// windowMsec is the synthesis window length in milliseconds.
func NewVoice(fundamental, windowMsec, sampleRate float64) (*Voice, error) {
	if fundamental <= 0 {
		return nil, fmt.Errorf("%w: fundamental must be positive", ErrInvalidConfig)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	bins := 1 + int(sampleRate*windowMsec/2000)
	if bins < 2 {
		return nil, fmt.Errorf("%w: window of %g ms holds no samples at %g Hz",
			ErrInvalidConfig, windowMsec, sampleRate)
	}

	frameLen := 2 * (bins - 1)
	win := make([]float64, frameLen)
	for i := range win {
		win[i] = 1
	}
	window.Hann(win)

	return &Voice{
		fundamental: fundamental,
		sampleRate:  sampleRate,
		nyquist:     sampleRate / 2,
		bins:        bins,
		win:         win,
		fft:         fourier.NewFFT(frameLen),
	}, nil
}

// FrameLen returns the number of samples per synthesis frame.
func (v *Voice) FrameLen() int { return 2 * (v.bins - 1) }

// SampleRate returns the model's output sample rate in Hz.
func (v *Voice) SampleRate() float64 { return v.sampleRate }

// freqAt returns the frequency of spectrum bin i, spanning 0..nyquist.
func (v *Voice) freqAt(i int) float64 {
	return v.nyquist * float64(i) / float64(v.bins-1)
}

// SourceSpectrum returns the glottal source power spectrum: Gaussian
// bumps of width bandwidth at every harmonic of the fundamental, with
// per-harmonic amplitude decay tied to the bandwidth (wider sources
// decay slower).
func (v *Voice) SourceSpectrum(bandwidth float64) []float64 {
	slope := math.Min(1, math.Max(0.5, 0.07*math.Log(bandwidth)+0.5))
	spec := make([]float64, v.bins)
	harmonics := int(1 + v.nyquist/v.fundamental)
	amp := 1.0
	for h := 1; h <= harmonics; h++ {
		center := float64(h) * v.fundamental
		for i := range spec {
			d := (v.freqAt(i) - center) / bandwidth
			spec[i] += amp * math.Exp(-d*d)
		}
		amp *= slope
	}
	return spec
}

// FilterSpectrum returns the vocal tract filter power spectrum: one
// Gaussian bump per formant.
func (v *Voice) FilterSpectrum(formants []Formant) []float64 {
	spec := make([]float64, v.bins)
	for _, f := range formants {
		for i := range spec {
			d := (v.freqAt(i) - f.Center) / f.Bandwidth
			spec[i] += f.Amplitude * math.Exp(-d*d)
		}
	}
	return spec
}

// frame synthesizes one windowed time-domain frame from a source
// bandwidth and formant set.
func (v *Voice) frame(bandwidth float64, formants []Formant) []float64 {
	src := v.SourceSpectrum(bandwidth)
	flt := v.FilterSpectrum(formants)

	coeffs := make([]complex128, v.bins)
	for i := range coeffs {
		coeffs[i] = complex(voiceSourceWeight*src[i]*voiceFilterWeight*flt[i], 0)
	}

	out := v.fft.Sequence(nil, coeffs)
	// gonum's inverse transform is unnormalized.
	f64.Scale(out, out, 1/float64(len(out)))
	floats.Mul(out, v.win)
	return out
}

// Speak returns an endless stream synthesizing the formant frames
// pulled from src, joined by 50% overlap-add.
func (v *Voice) Speak(src FormantSource) SampleStream {
	s := &voiceStream{voice: v, src: src, half: v.bins - 1}
	s.prev = v.frame(src.Next())
	s.curr = v.frame(src.Next())
	return s
}

type voiceStream struct {
	voice *Voice
	src   FormantSource

	prev, curr []float64
	half       int
	pos        int
}

func (s *voiceStream) Next() float64 {
	if s.pos == s.half {
		s.prev = s.curr
		s.curr = s.voice.frame(s.src.Next())
		s.pos = 0
	}
	out := s.prev[s.half+s.pos] + s.curr[s.pos]
	s.pos++
	return out
}

// Formant random walk parameters: initial ranges, drift spans and the
// sigmoid centers/widths pulling each formant back toward its region.
var walkParams = [4]struct {
	initLo, initHi       float64
	drift, center, width float64
	amplitude, bandwidth float64
}{
	{300, 700, 30, 500, 100, 1.0, 200},
	{800, 2000, 50, 1500, 300, 0.9, 100},
	{2000, 2500, 70, 2200, 500, 0.8, 100},
	{2500, 3500, 90, 3000, 700, 0.7, 100},
}

// Bandwidth walk parameters.
const (
	walkJumpProbability = 0.1
	walkInitBandwidth   = 10.0
	walkGammaShape      = 5.0
	walkGammaScale      = 5.0
)

// RandomWalk returns a formant source performing a bounded random walk
// over four formant regions: occasionally the source bandwidth is
// redrawn from a gamma distribution and every formant drifts by a
// uniform step whose direction is biased back toward its home region.
// src may be nil to use the shared global random source.
func (v *Voice) RandomWalk(src rand.Source) FormantSource {
	w := &formantWalk{
		uni:   distuv.Uniform{Min: 0, Max: 1, Src: src},
		gamma: distuv.Gamma{Alpha: walkGammaShape, Beta: 1 / walkGammaScale, Src: src},
		bw:    walkInitBandwidth,
	}
	for i, p := range walkParams {
		w.f[i] = p.initLo + (p.initHi-p.initLo)*w.uni.Rand()
	}
	return w
}

type formantWalk struct {
	uni   distuv.Uniform
	gamma distuv.Gamma
	bw    float64
	f     [4]float64
}

func (w *formantWalk) Next() (float64, []Formant) {
	if w.uni.Rand() < walkJumpProbability {
		w.bw = w.gamma.Rand()
		for i, p := range walkParams {
			// Sigmoid pull: the closer a formant sits above its home
			// center, the more its next step is biased downward.
			r := 1 / (1 + math.Exp((p.center-w.f[i])/p.width))
			lo, hi := -p.drift*r, p.drift*(1-r)
			w.f[i] += lo + (hi-lo)*w.uni.Rand()
		}
	}

	formants := make([]Formant, len(walkParams))
	for i, p := range walkParams {
		formants[i] = Formant{Amplitude: p.amplitude, Center: w.f[i], Bandwidth: p.bandwidth}
	}
	return w.bw, formants
}
