package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-synth/internal/testutil"
)

// mixFixture builds the two-clip repertoire used by the hand-computed
// superposition tests: [1,1,1] and [2,2].
func mixFixture(t *testing.T) *Repertoire {
	t.Helper()
	a, err := NewClip([]float64{1, 1, 1}, 1, testRate, BitDepthFloat)
	require.NoError(t, err)
	b, err := NewClip([]float64{2, 2}, 1, testRate, BitDepthFloat)
	require.NoError(t, err)
	rep, err := NewRepertoire(a, b)
	require.NoError(t, err)
	return rep
}

// TestMix_HandComputedSuperposition checks every emitted value against
// the superposition computed by hand, across the staging buffer's
// rotation boundary at N=3.
func TestMix_HandComputedSuperposition(t *testing.T) {
	rep := mixFixture(t)

	controls := ControlList(
		ControlFrame{{Index: 0, Coeff: 0.5}, {Index: 1, Coeff: 1.0}},
		ControlFrame{},
		ControlFrame{{Index: 1, Coeff: 0.5}},
		ControlFrame{},
		ControlFrame{},
		ControlFrame{},
	)

	stream, err := rep.Mix(controls, testRate)
	require.NoError(t, err)
	assert.Equal(t, 1, stream.Channels())

	got, err := ReadFrames(stream, 6)
	require.NoError(t, err)
	// Tick 0 injects 0.5*[1,1,1] and 1.0*[2,2]; tick 2 injects
	// 0.5*[2,2], whose second sample lands beyond the rotation point.
	want := []float64{2.5, 2.5, 1.5, 1, 0, 0}
	assert.InDeltaSlice(t, want, got, testutil.SampleTolerance)
}

func TestMix_ControlsExhaustedIsFatal(t *testing.T) {
	rep := mixFixture(t)

	stream, err := rep.Mix(ControlList(ControlFrame{}), testRate)
	require.NoError(t, err)

	frame := make([]float64, 1)
	require.NoError(t, stream.Next(frame))
	err = stream.Next(frame)
	require.ErrorIs(t, err, ErrControlsExhausted)
}

// countingControls wraps an iterator and counts pulls.
type countingControls struct {
	inner ControlIterator
	pulls int
}

func (c *countingControls) Next() (ControlFrame, error) {
	c.pulls++
	return c.inner.Next()
}

// TestMix_ControlRateSpacing verifies that a control rate of half the
// sample rate pulls one control frame every two output ticks.
func TestMix_ControlRateSpacing(t *testing.T) {
	rep := mixFixture(t)

	counter := &countingControls{inner: ControlList(
		ControlFrame{}, ControlFrame{}, ControlFrame{},
	)}
	stream, err := rep.Mix(counter, testRate/2)
	require.NoError(t, err)

	_, err = ReadFrames(stream, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, counter.pulls)
}

// TestStaging_Rotation snapshots the buffer around the cursor wrap at
// N=5: the second half must be copied into the first exactly and then
// zeroed.
func TestStaging_Rotation(t *testing.T) {
	b := newStagingBuffer(5, 1)

	// Park the cursor near the boundary so the write straddles halves.
	b.advance()
	b.advance()
	b.advance()
	b.accumulate([]float64{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, []float64{0, 0, 0, 2, 4, 6, 8, 10, 0, 0}, b.data)

	backHalf := append([]float64(nil), b.data[5:]...)
	b.advance()
	b.advance() // cursor hits N here and the buffer rotates

	assert.Equal(t, 0, b.pos)
	assert.Equal(t, backHalf, b.data[:5], "front half must equal the old back half")
	testutil.AssertAllZero(t, b.data[5:], "back half must be zeroed")
}

func TestMix_StereoFrames(t *testing.T) {
	clip, err := NewClip([]float64{1, 10, 2, 20}, 2, testRate, BitDepthFloat)
	require.NoError(t, err)
	rep, err := NewRepertoire(clip)
	require.NoError(t, err)

	stream, err := rep.Mix(ControlList(
		ControlFrame{{Index: 0, Coeff: 1}},
		ControlFrame{},
	), testRate)
	require.NoError(t, err)
	assert.Equal(t, 2, stream.Channels())

	got, err := ReadFrames(stream, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10, 2, 20}, got)
}

// TestMix_OverlappingInjections verifies the staging invariant with
// contributions injected on consecutive ticks over the same region.
func TestMix_OverlappingInjections(t *testing.T) {
	rep := mixFixture(t)

	stream, err := rep.Mix(ControlList(
		ControlFrame{{Index: 0, Coeff: 1}},
		ControlFrame{{Index: 0, Coeff: 1}},
		ControlFrame{},
		ControlFrame{},
	), testRate)
	require.NoError(t, err)

	got, err := ReadFrames(stream, 4)
	require.NoError(t, err)
	// [1,1,1] at tick 0 plus [1,1,1] at tick 1 superimpose to
	// 1, 2, 2, 1 at successive ticks.
	assert.InDeltaSlice(t, []float64{1, 2, 2, 1}, got, testutil.SampleTolerance)
}
