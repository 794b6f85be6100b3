package synth

import (
	"fmt"
	"time"

	"github.com/go-audio/audio"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// defaultIntBitDepth is assumed for integer buffers that do not declare
// their source bit depth.
const defaultIntBitDepth = 16

// Clip is a fixed-rate sequence of audio frames with a known sample rate,
// channel count and source bit depth. Clips are owned by whoever built
// them; a Repertoire only borrows references and never mutates clip
// contents.
type Clip struct {
	samples    []float64
	channels   int
	sampleRate float64
	bitDepth   int
}

// NewClip creates a clip from interleaved float64 samples.
// bitDepth records the numeric kind the samples were decoded from and is
// used only for repertoire homogeneity checks; synthesized material should
// use BitDepthFloat. The clip keeps a reference to samples, it does not
// copy.
func NewClip(samples []float64, channels int, sampleRate float64, bitDepth int) (*Clip, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidClip)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrInvalidClip)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: clip holds no samples", ErrInvalidClip)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrInvalidClip, len(samples), channels)
	}

	return &Clip{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
	}, nil
}

// ClipFromBuffer adapts a go-audio float buffer into a clip.
// The clip borrows the buffer's data slice.
func ClipFromBuffer(buf *audio.FloatBuffer) (*Clip, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidClip)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = BitDepthFloat
	}

	return NewClip(buf.Data, buf.Format.NumChannels, float64(buf.Format.SampleRate), bitDepth)
}

// ClipFromIntBuffer adapts a go-audio PCM buffer into a clip, scaling
// integer samples into [-1, 1] by the buffer's source bit depth
// (16 bits when undeclared).
func ClipFromIntBuffer(buf *audio.IntBuffer) (*Clip, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidClip)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = defaultIntBitDepth
	}

	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * scale
	}

	return NewClip(samples, buf.Format.NumChannels, float64(buf.Format.SampleRate), bitDepth)
}

// RenderClip pulls frames samples from a scalar stream into a new mono
// clip, letting procedural sources such as White or Pink join a
// repertoire alongside decoded audio.
func RenderClip(s SampleStream, frames int, sampleRate float64) (*Clip, error) {
	if frames < 1 {
		return nil, fmt.Errorf("%w: frame count must be positive", ErrInvalidClip)
	}
	return NewClip(ReadSamples(s, frames), monoChannels, sampleRate, BitDepthFloat)
}

// Len returns the number of frames in the clip.
func (c *Clip) Len() int { return len(c.samples) / c.channels }

// Channels returns the number of samples per frame.
func (c *Clip) Channels() int { return c.channels }

// SampleRate returns the clip's sample rate in Hz.
func (c *Clip) SampleRate() float64 { return c.sampleRate }

// BitDepth returns the source bit depth the clip was decoded from.
func (c *Clip) BitDepth() int { return c.bitDepth }

// Duration returns the clip's play time at its native rate.
func (c *Clip) Duration() time.Duration {
	return time.Duration(float64(c.Len()) / c.sampleRate * float64(time.Second))
}

// Samples returns the clip's interleaved sample data.
// The returned slice is the clip's internal buffer; copy it before
// modifying.
func (c *Clip) Samples() []float64 { return c.samples }

// Frame copies frame i into dst. len(dst) must be at least Channels().
func (c *Clip) Frame(i int, dst []float64) {
	copy(dst, c.samples[i*c.channels:(i+1)*c.channels])
}

// Normalize standardizes the clip in place to zero mean and unit
// standard deviation. A constant clip is only centered, since it carries
// no variance to scale by.
func (c *Clip) Normalize() {
	mean := stat.Mean(c.samples, nil)
	std := stat.StdDev(c.samples, nil)
	floats.AddConst(-mean, c.samples)
	if std > 0 {
		f64.Scale(c.samples, c.samples, 1/std)
	}
}

// Gain scales every sample in place by g.
func (c *Clip) Gain(g float64) {
	f64.Scale(c.samples, c.samples, g)
}

// Mono returns a mono mixdown of the clip, averaging each frame across
// its channels. A mono clip is returned unchanged.
func (c *Clip) Mono() *Clip {
	if c.channels == monoChannels {
		return c
	}

	frames := c.Len()
	mixed := make([]float64, frames)
	for i := 0; i < frames; i++ {
		mixed[i] = f64.Sum(c.samples[i*c.channels:(i+1)*c.channels]) / float64(c.channels)
	}

	return &Clip{
		samples:    mixed,
		channels:   monoChannels,
		sampleRate: c.sampleRate,
		bitDepth:   c.bitDepth,
	}
}
