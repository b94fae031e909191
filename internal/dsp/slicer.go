package dsp

import "math"

// ThresholdLinear converts the configured threshold_db (dB below the
// long-term average power) into the linear multiplier used by the OOK
// slicers: 10^(-threshold_db/10).
func ThresholdLinear(thresholdDB float64) float64 {
	return math.Pow(10, -thresholdDB/10)
}

// OOKSlicer implements the on-off-keying symbol slicer used by DCF77 and
// MSF60: data = 1 iff the short-term power average exceeds the long-term
// average scaled by the linear threshold.
type OOKSlicer struct {
	ThresholdLin float64
}

// Slice returns the sliced bit (0 or 1) and the absolute threshold used,
// so callers (and the scope tap) can observe it.
func (s *OOKSlicer) Slice(shortAvg, longAvg float64) (data int, threshold float64) {
	threshold = longAvg * s.ThresholdLin
	if shortAvg > threshold {
		return 1, threshold
	}
	return 0, threshold
}

// fmScaling is R / (2 * 20/pi), the FM discriminator gain, fixed
// because R (CanonicalRate) is fixed.
var fmScaling = CanonicalRate / (2.0 * 20.0 / math.Pi)

// PhaseSlicer implements the TDF ternary phase slicer: an FM phase
// discriminator followed by a moving average and two thresholds.
type PhaseSlicer struct {
	Smooth MovingAverage // fm_demod_avg

	prev complex128
	have bool
}

// Slice consumes one canonical complex sample and returns the ternary
// symbol (-1, 0, +1) along with the smoothed discriminator output
// (fm_demod_avg), which the scope tap can select directly.
func (s *PhaseSlicer) Slice(sample complex128) (data int, fmDemodAvg float64) {
	var fmDemod float64
	if s.have {
		// Phase difference between consecutive samples, scaled to a
		// frequency deviation via a delay-line phase discriminator.
		delta := sample * complex(real(s.prev), -imag(s.prev))
		fmDemod = math.Atan2(imag(delta), real(delta)) * fmScaling
	}
	s.prev = sample
	s.have = true

	avg := s.Smooth.Update(fmDemod)

	switch {
	case avg >= 0.5:
		return 1, avg
	case avg <= -0.5:
		return -1, avg
	default:
		return 0, avg
	}
}

// Reset clears slicer state, used on modulation/settings changes.
func (s *PhaseSlicer) Reset() {
	s.Smooth.Reset()
	s.prev = 0
	s.have = false
}
