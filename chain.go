package synth

import "math/rand/v2"

// chainPhase is the chain synthesizer's explicit state tag.
type chainPhase int

const (
	// chainPlaying plays the active member alone; no target is queued.
	chainPlaying chainPhase = iota

	// chainCrossfading blends the active member into a queued target.
	chainCrossfading
)

// chain plays randomly chosen repertoire members as one continuous
// stream. While the active member's cursor sits before the trailing
// overlap region the member plays untouched; once the cursor passes
// (1-overlap)*len(active), a target member is drawn and every emitted
// frame becomes the blend
//
//	mix*active[a] + (1-mix)*target[t]
//
// with mix = (len(active)-a) / (overlap*len(active)), falling linearly
// from 1 toward 0 as the active member runs out. When it does, the
// target is promoted to active with its cursor intact and the machine
// returns to the playing phase.
type chain struct {
	rep     *Repertoire
	overlap float64
	rnd     *rand.Rand // nil means the shared global source

	phase        chainPhase
	active       *Clip
	activeOffset int
	target       *Clip
	targetOffset int
}

func newChain(rep *Repertoire, overlap float64, src rand.Source) *chain {
	c := &chain{rep: rep, overlap: overlap}
	if src != nil {
		c.rnd = rand.New(src)
	}
	c.active = rep.At(c.pick())
	return c
}

// pick draws a uniformly random member index.
func (c *chain) pick() int {
	if c.rnd != nil {
		return c.rnd.IntN(c.rep.Len())
	}
	return rand.IntN(c.rep.Len())
}

// Channels returns the repertoire's shared channel count.
func (c *chain) Channels() int { return c.rep.Channels() }

// Next emits one frame. It never returns an error: the only failure
// mode, exhausting the active member with no crossfade target queued,
// indicates an overlap too small for the member lengths in play and is
// treated as a contract violation.
func (c *chain) Next(dst []float64) error {
	activeLen := c.active.Len()
	if float64(c.activeOffset) > (1-c.overlap)*float64(activeLen) {
		if c.phase == chainPlaying {
			c.target = c.rep.At(c.pick())
			c.targetOffset = 0
			c.phase = chainCrossfading
		}
		mix := float64(activeLen-c.activeOffset) / (c.overlap * float64(activeLen))
		c.blend(dst, mix)
		c.targetOffset++
	} else {
		c.active.Frame(c.activeOffset, dst)
	}

	c.activeOffset++
	if c.activeOffset == activeLen {
		if c.phase != chainCrossfading {
			panic("synth: active clip exhausted with no crossfade target queued")
		}
		c.active, c.activeOffset = c.target, c.targetOffset
		c.target, c.targetOffset = nil, 0
		c.phase = chainPlaying
	}
	return nil
}

// blend writes mix*active + (1-mix)*target at the current cursors.
func (c *chain) blend(dst []float64, mix float64) {
	n := c.rep.Channels()
	a := c.active.Samples()[c.activeOffset*n:]
	t := c.target.Samples()[c.targetOffset*n:]
	for ch := 0; ch < n; ch++ {
		dst[ch] = mix*a[ch] + (1-mix)*t[ch]
	}
}
