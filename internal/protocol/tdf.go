package protocol

import (
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/report"
)

// TDF implements the French 162 kHz phase-modulated time-code state
// machine. It consumes the ternary symbol {-1,0,+1} already produced by
// dsp.PhaseSlicer.
type TDF struct {
	Common
}

// NewTDF builds a TDF machine pushing its messages to queue.
func NewTDF(queue *report.Queue) *TDF {
	return &TDF{Common{Queue: queue}}
}

// Step consumes one canonical sample's sliced ternary symbol.
func (t *TDF) Step(data int) {
	switch {
	case data == 1 && t.PrevData == 0:
		t.onRisingEdge()
	case data == 0 && t.PrevData != 0:
		t.ZeroCount = 0
	case data == 0:
		t.ZeroCount++
	}

	if t.GotMinuteMarker {
		t.PeriodCount++
		switch t.PeriodCount {
		case 12:
			t.Bits[0] = data
		case 12 + 50:
			t.Bits[1] = data
		case 12 + 100:
			t.Bits[2] = data
		case 12 + 150:
			t.Bits[3] = data
			t.onSecondBoundary()
		case 950:
			if t.Second == 59 {
				decodeDCFStyle(&t.Common)
			} else {
				t.Second++
				t.DateTime = t.DateTime.AddSecond()
			}
			t.emitDateTime()
		case 1000:
			t.PeriodCount = 0
		}
	}

	t.PrevData = data
}

// onRisingEdge looks for the TDF minute marker: second 59 has no phase
// modulation at all, so it shows up as an unmodulated (zero-symbol) run of
// 1R..2R samples.
func (t *TDF) onRisingEdge() {
	const r = dsp.CanonicalRate
	if float64(t.ZeroCount) >= 1.0*r && float64(t.ZeroCount) <= 2.0*r {
		if !t.GotMinuteMarker {
			t.emitStatus(report.StatusGotMinuteMarker)
		}
		t.PeriodCount = 0
		t.Second = 0
		t.GotMinuteMarker = true
		t.SecondMarkers = 1
	}
}

// onSecondBoundary runs at period_count==162: it confirms the per-second
// sync pattern and decodes this second's data bit from the remaining two
// phase observations.
func (t *TDF) onSecondBoundary() {
	if t.Bits[0] == 1 && t.Bits[1] == -1 {
		t.SecondMarkers++
	}
	t.checkLock()

	switch {
	case t.Bits[2] == 0 && t.Bits[3] == 0:
		t.TimeCode[t.Second] = 0
	case t.Bits[2] == 1 && t.Bits[3] == -1:
		t.TimeCode[t.Second] = 1
	default:
		// Unexpected modulation: leave the bit at its previous value.
	}
}
