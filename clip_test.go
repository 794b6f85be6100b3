package synth

import (
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNewClip_Validation(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float64
		channels int
		rate     float64
	}{
		{"no_samples", nil, 1, testRate},
		{"zero_channels", []float64{1}, 0, testRate},
		{"zero_rate", []float64{1}, 1, 0},
		{"negative_rate", []float64{1}, 1, -1},
		{"ragged_frames", []float64{1, 2, 3}, 2, testRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClip(tt.samples, tt.channels, tt.rate, BitDepthFloat)
			assert.ErrorIs(t, err, ErrInvalidClip)
		})
	}
}

func TestClip_Accessors(t *testing.T) {
	c, err := NewClip([]float64{1, 2, 3, 4, 5, 6}, 2, 3, 24)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Channels())
	assert.Equal(t, 3.0, c.SampleRate())
	assert.Equal(t, 24, c.BitDepth())
	assert.Equal(t, time.Second, c.Duration())

	frame := make([]float64, 2)
	c.Frame(1, frame)
	assert.Equal(t, []float64{3, 4}, frame)
}

func TestClipFromBuffer(t *testing.T) {
	buf := &audio.FloatBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 48000},
		Data:           []float64{0.1, 0.2, 0.3, 0.4},
		SourceBitDepth: 24,
	}

	c, err := ClipFromBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Channels())
	assert.Equal(t, 48000.0, c.SampleRate())
	assert.Equal(t, 24, c.BitDepth())
	assert.Equal(t, buf.Data, c.Samples())

	_, err = ClipFromBuffer(nil)
	assert.ErrorIs(t, err, ErrInvalidClip)
}

func TestClipFromIntBuffer_Scaling(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           []int{16384, -32768, 0},
		SourceBitDepth: 16,
	}

	c, err := ClipFromIntBuffer(buf)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -1.0, 0}, c.Samples(), 1e-12)
	assert.Equal(t, 16, c.BitDepth())
}

func TestClip_Normalize(t *testing.T) {
	c, err := NewClip([]float64{1, 2, 3, 4}, 1, testRate, BitDepthFloat)
	require.NoError(t, err)

	c.Normalize()
	assert.InDelta(t, 0, stat.Mean(c.Samples(), nil), 1e-12)
	assert.InDelta(t, 1, stat.StdDev(c.Samples(), nil), 1e-12)
}

func TestClip_NormalizeConstant(t *testing.T) {
	c, err := NewClip([]float64{3, 3, 3}, 1, testRate, BitDepthFloat)
	require.NoError(t, err)

	// Constant clips are centered only; dividing by zero variance would
	// poison the samples.
	c.Normalize()
	assert.Equal(t, []float64{0, 0, 0}, c.Samples())
}

func TestClip_Gain(t *testing.T) {
	c, err := NewClip([]float64{1, -2, 0.5}, 1, testRate, BitDepthFloat)
	require.NoError(t, err)

	c.Gain(2)
	assert.Equal(t, []float64{2, -4, 1}, c.Samples())
}

func TestClip_Mono(t *testing.T) {
	c, err := NewClip([]float64{1, 3, 2, 4}, 2, testRate, BitDepthFloat)
	require.NoError(t, err)

	m := c.Mono()
	assert.Equal(t, 1, m.Channels())
	assert.Equal(t, []float64{2, 3}, m.Samples())
	assert.Equal(t, c.SampleRate(), m.SampleRate())

	mono := constClip(t, 1, 4, 1, testRate, BitDepthFloat)
	assert.Same(t, mono, mono.Mono(), "mono clips pass through unchanged")
}

// fixedStream emits a constant value forever.
type fixedStream struct{ value float64 }

func (s fixedStream) Next() float64 { return s.value }

func TestRenderClip(t *testing.T) {
	c, err := RenderClip(fixedStream{value: 0.25}, 8, testRate)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())
	assert.Equal(t, 1, c.Channels())
	assert.Equal(t, BitDepthFloat, c.BitDepth())
	for _, v := range c.Samples() {
		assert.Equal(t, 0.25, v)
	}

	_, err = RenderClip(fixedStream{}, 0, testRate)
	assert.ErrorIs(t, err, ErrInvalidClip)
}
