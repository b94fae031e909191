package dsp

import "math"

// CanonicalRate is the internal sample rate every protocol state machine
// runs at: it advances exactly once per canonical sample, and one second
// of signal is exactly CanonicalRate samples.
const CanonicalRate = 1000

// filterTaps is the number of taps used for the anti-alias lowpass kernel.
// Fixed and small: the sample path must stay allocation-free in steady
// state, so the kernel and its history ring are sized once at Create and
// never reallocated afterwards.
const filterTaps = 33

// RateConverter rate-converts an arbitrary input IQ stream to the
// CanonicalRate. It runs a short windowed-sinc lowpass (cutoff set by
// Create) ahead of a fractional-accumulator resampler.
type RateConverter struct {
	taps [filterTaps]float64

	history    [filterTaps]complex128
	historyPos int

	distance      float64 // inputRate / CanonicalRate
	distanceRemain float64
	prevOut       complex128
}

// Create (re)builds the filter kernel and resets the resampling
// accumulator for the given input sample rate and cutoff frequency (Hz).
// Any reconfiguration resets the accumulator.
func (r *RateConverter) Create(inputRate int, cutoffHz float64) {
	fc := cutoffHz / float64(inputRate) // cutoff as a fraction of input rate
	if fc > 0.5 {
		fc = 0.5
	}
	center := 0.5 * float64(filterTaps-1)
	var sum float64
	for j := 0; j < filterTaps; j++ {
		x := float64(j) - center
		var sinc float64
		if x == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		// Hamming window.
		w := 0.53836 - 0.46164*math.Cos((float64(j)*2*math.Pi)/(filterTaps-1))
		r.taps[j] = sinc * w
		sum += r.taps[j]
	}
	if sum != 0 {
		for j := range r.taps {
			r.taps[j] /= sum
		}
	}

	r.history = [filterTaps]complex128{}
	r.historyPos = 0
	r.prevOut = 0

	r.distance = float64(inputRate) / float64(CanonicalRate)
	r.distanceRemain = r.distance
}

// filter pushes one raw sample through the FIR history ring and returns
// the filtered value.
func (r *RateConverter) filter(c complex128) complex128 {
	r.history[r.historyPos] = c
	var acc complex128
	pos := r.historyPos
	for _, tap := range r.taps {
		acc += complex(tap, 0) * r.history[pos]
		pos--
		if pos < 0 {
			pos = filterTaps - 1
		}
	}
	r.historyPos++
	if r.historyPos == filterTaps {
		r.historyPos = 0
	}
	return acc
}

// Process consumes one input-rate sample and appends zero or more
// canonical-rate samples to dst, returning the extended slice. In
// decimation mode (inputRate > CanonicalRate) it emits a sample only when
// the accumulator crosses its boundary; in interpolation mode
// (inputRate < CanonicalRate) it emits one or more samples per input.
func (r *RateConverter) Process(c complex128, dst []complex128) []complex128 {
	filtered := r.filter(c)

	if r.distance >= 1.0 { // decimate
		r.distanceRemain--
		if r.distanceRemain <= 0 {
			dst = append(dst, filtered)
			r.distanceRemain += r.distance
		}
	} else { // interpolate: may emit more than one canonical sample
		for r.distanceRemain <= 1.0 {
			frac := r.distanceRemain
			interp := r.prevOut + complex(frac, 0)*(filtered-r.prevOut)
			dst = append(dst, interp)
			r.distanceRemain += r.distance
		}
		r.distanceRemain -= 1.0
	}

	r.prevOut = filtered
	return dst
}
