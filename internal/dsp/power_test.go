package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingAveragePrimesOnFirstSample(t *testing.T) {
	var m MovingAverage
	m.Alpha = 0.1
	assert.Equal(t, 5.0, m.Update(5), "first Update should prime to the first sample")
	assert.Equal(t, 6.0, m.Update(15)) // 5 + 0.1*(15-5) = 6
}

func TestMovingAverageReset(t *testing.T) {
	var m MovingAverage
	m.Alpha = 0.5
	m.Update(100)
	m.Reset()
	assert.Equal(t, 3.0, m.Update(3), "Update after Reset should re-prime")
}

func TestPowerEstimatorUpdate(t *testing.T) {
	p := NewPowerEstimator(0.5, 0.1)

	magsq, shortAvg, longAvg := p.Update(complex(3, 4)) // |3+4i|^2 = 25
	assert.Equal(t, 25.0, magsq)
	assert.Equal(t, 25.0, shortAvg, "first update should prime both averages")
	assert.Equal(t, 25.0, longAvg)

	_, shortAvg, longAvg = p.Update(complex(0, 0)) // magsq = 0
	assert.Equal(t, 12.5, shortAvg)                // 25 + 0.5*(0-25)
	assert.Equal(t, 22.5, longAvg)                 // 25 + 0.1*(0-25)
}

func TestPowerEstimatorLevelMeterPullAndReset(t *testing.T) {
	p := NewPowerEstimator(0.3, 0.05)
	p.Update(complex(1, 0)) // magsq 1
	p.Update(complex(3, 0)) // magsq 9
	p.Update(complex(2, 0)) // magsq 4

	peak, avg, count := p.LevelMeter()
	assert.Equal(t, 9.0, peak)
	assert.Equal(t, (1.0+9.0+4.0)/3.0, avg)
	assert.Equal(t, 3, count)

	peak, avg, count = p.LevelMeter()
	assert.Zero(t, peak, "LevelMeter should reset after a pull")
	assert.Zero(t, avg)
	assert.Zero(t, count)
}

func TestPowerEstimatorReset(t *testing.T) {
	p := NewPowerEstimator(0.5, 0.5)
	p.Update(complex(10, 0))
	p.Reset()

	magsq, shortAvg, longAvg := p.Update(complex(2, 0))
	assert.Equal(t, 4.0, magsq)
	assert.Equal(t, 4.0, shortAvg, "after Reset, first Update should re-prime both averages")
	assert.Equal(t, 4.0, longAvg)
}
