package synth

// Common sample rates, in Hz.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech processing common sample rate.
	RateSpeech = 22050
)

// Default synthesis parameters.
const (
	// DefaultOverlap is the default crossfade overlap proportion for Chain.
	DefaultOverlap = 0.25

	// DefaultPinkSize is the default octave count for the pink noise
	// generator. Larger values extend the 1/f spectrum to lower
	// frequencies at a slightly higher setup cost; each emitted sample
	// stays O(1) regardless.
	DefaultPinkSize = 10

	// BitDepthFloat is the bit depth recorded on clips synthesized
	// directly as float64 samples.
	BitDepthFloat = 64
)

// monoChannels is the channel count of scalar sample streams.
const monoChannels = 1
