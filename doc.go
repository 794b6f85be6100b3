// Package synth provides streaming audio synthesis and mixing in pure Go.
//
// The library combines a homogeneous repertoire of short audio clips into
// endless output streams, and generates procedural noise to use as raw
// signal material. All producers are lazy, pull-based and single-owner:
// nothing is computed until the consumer asks for the next frame, and a
// consumer cancels a stream simply by no longer pulling from it.
//
// # Features
//
//   - White and pink (1/f) noise sources using the Voss-McCartney algorithm
//   - Validated clip repertoires with enforced rate/shape/depth homogeneity
//   - Continuous crossfade chaining of randomly selected repertoire members
//   - Stochastic control-signal-driven mixing over an amortized O(1)
//     circular accumulation buffer
//   - Source-filter voice synthesis and gammatone/gammachirp kernels
//   - Deterministic output from seedable, injected random sources
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// Build a repertoire from clips and chain them into an endless stream:
//
//	rep, err := synth.NewRepertoire(clips...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := rep.Chain(synth.DefaultOverlap, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frame := make([]float64, stream.Channels())
//	for i := 0; i < numFrames; i++ {
//	    if err := stream.Next(frame); err != nil {
//	        log.Fatal(err)
//	    }
//	    emit(frame)
//	}
//
// Or drive the mixer with stochastic control frames:
//
//	controls, err := rep.Controls(0.02, 0.1, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stream, err := rep.Mix(controls, 3.0)
//
// # Architecture
//
// Every generator is an explicit stateful iterator rather than a callback
// pipeline:
//
//	NoiseSource ----> Clip adapter --+
//	                                 |--> Repertoire --> Chain  --> frames
//	Decoded clips (go-audio) --------+              \--> Mixer  --> frames
//	                                                     ^
//	                                  Controls ----------+
//
// The chain synthesizer crossfades between randomly chosen members with a
// linear amplitude blend over a configurable overlap region. The mixer
// superimposes scaled member copies into a rolling staging buffer sized to
// twice the longest member, so a member injected near the buffer midpoint
// never needs a bounds check; the buffer rotates once per half-length,
// which amortizes to O(1) per emitted frame.
//
// # Randomness
//
// Every stochastic component accepts a math/rand/v2 Source. Passing nil
// uses the shared global source; passing a seeded source (for example
// rand.NewPCG) makes the produced sequence fully deterministic, which the
// test suite relies on.
//
// # Thread Safety
//
// Streams are single-owner: a stream instance must be driven by one
// goroutine at a time. Independent streams share no mutable state and may
// run concurrently without locks.
package synth
