// Package dsp implements the sample-rate-normalized front end shared by all
// three radio time-code protocols: NCO translation, rate conversion to the
// canonical 1000 samples/second rate, power estimation and symbol slicing.
package dsp

import "math"

// NCO is a numerically controlled oscillator used to shift a channel to
// baseband before rate conversion. It keeps a running phase accumulator
// rather than a lookup table so it can be retuned to an arbitrary
// frequency offset without recomputing a table.
type NCO struct {
	phase float64 // radians, wrapped to [-pi, pi]
	step  float64 // radians per sample
}

// SetFreq configures the oscillator for a frequency offset (Hz; a
// positive offset shifts the signal down in frequency) at the given input
// sample rate. The phase accumulator is left untouched;
// callers that want a clean retune should construct a new NCO.
func (n *NCO) SetFreq(freqOffset, sampleRate float64) {
	n.step = 2 * math.Pi * freqOffset / sampleRate
}

// NextIQ advances the oscillator by one sample and returns the next
// rotation vector exp(-j*2*pi*f*n/fs).
func (n *NCO) NextIQ() complex128 {
	iq := complex(math.Cos(n.phase), -math.Sin(n.phase))
	n.phase += n.step
	if n.phase > math.Pi {
		n.phase -= 2 * math.Pi
	} else if n.phase < -math.Pi {
		n.phase += 2 * math.Pi
	}
	return iq
}

// Reset zeroes the phase accumulator, as happens on a channel
// reconfiguration.
func (n *NCO) Reset() {
	n.phase = 0
}
