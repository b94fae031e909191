package dsp

// MovingAverage is a single-pole IIR moving average: cheap,
// allocation-free, and fine for both a fast and a slow smoothing
// constant depending only on Alpha.
type MovingAverage struct {
	Alpha   float64 // smoothing factor in (0,1]; larger reacts faster
	value   float64
	primed  bool
}

// Update feeds one sample into the average and returns the new value.
func (m *MovingAverage) Update(sample float64) float64 {
	if !m.primed {
		m.value = sample
		m.primed = true
		return m.value
	}
	m.value += m.Alpha * (sample - m.value)
	return m.value
}

// Value returns the current average without updating it.
func (m *MovingAverage) Value() float64 {
	return m.value
}

// Reset clears the average back to its unprimed state.
func (m *MovingAverage) Reset() {
	m.value = 0
	m.primed = false
}

// PowerEstimator maintains the short/long moving averages over
// |sample|^2, plus the peak/sum/count accumulators pulled by the level
// meter (reset on read).
type PowerEstimator struct {
	Short MovingAverage // magsq_short_avg: instantaneous magnitude-squared
	Long  MovingAverage // magsq_long_avg: adaptive threshold reference

	peak  float64
	sum   float64
	count int
}

// NewPowerEstimator builds an estimator with the given short/long
// smoothing constants.
func NewPowerEstimator(shortAlpha, longAlpha float64) *PowerEstimator {
	return &PowerEstimator{
		Short: MovingAverage{Alpha: shortAlpha},
		Long:  MovingAverage{Alpha: longAlpha},
	}
}

// Update feeds one canonical-rate complex sample, returning its
// instantaneous |sample|^2 (magsq), the short-term average
// (magsq_short_avg) and the long-term average (magsq_long_avg).
func (p *PowerEstimator) Update(sample complex128) (magsq, shortAvg, longAvg float64) {
	re, im := real(sample), imag(sample)
	magsq = re*re + im*im

	shortAvg = p.Short.Update(magsq)
	longAvg = p.Long.Update(magsq)

	p.sum += magsq
	if magsq > p.peak {
		p.peak = magsq
	}
	p.count++

	return magsq, shortAvg, longAvg
}

// LevelMeter returns the peak, mean and sample count accumulated since the
// last call, then resets the accumulators. Mirrors the external level
// meter's pull-and-reset contract.
func (p *PowerEstimator) LevelMeter() (peak, avg float64, count int) {
	if p.count == 0 {
		return 0, 0, 0
	}
	peak, avg, count = p.peak, p.sum/float64(p.count), p.count
	p.peak, p.sum, p.count = 0, 0, 0
	return peak, avg, count
}

// Reset clears both moving averages and the level meter accumulators, as
// happens when the modulation changes.
func (p *PowerEstimator) Reset() {
	p.Short.Reset()
	p.Long.Reset()
	p.peak, p.sum, p.count = 0, 0, 0
}
