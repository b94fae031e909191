package protocol

import (
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/report"
)

// DCF77 implements the German 77.5 kHz OOK time-code state machine.
type DCF77 struct {
	Common
}

// NewDCF77 builds a DCF77 machine pushing its messages to queue.
func NewDCF77(queue *report.Queue) *DCF77 {
	return &DCF77{Common{Queue: queue}}
}

// Step consumes one canonical sample's sliced OOK bit (0 or 1).
func (d *DCF77) Step(data int) {
	switch {
	case data == 0 && d.PrevData == 1:
		d.onFallingEdge()
	case data == 1 && d.PrevData == 0:
		d.HighCount = 0
	case data == 1:
		d.HighCount++
	case data == 0:
		d.LowCount++
	}

	if d.GotMinuteMarker {
		d.PeriodCount++
		switch d.PeriodCount {
		case 50:
			if data == 0 {
				d.SecondMarkers++
			}
			d.checkLock()
		case 150:
			d.TimeCode[d.Second] = boolToBit(data == 0)
		case 950:
			if d.Second == 59 {
				decodeDCFStyle(&d.Common)
			} else {
				d.Second++
				d.DateTime = d.DateTime.AddSecond()
			}
			d.emitDateTime()
		case 1000:
			d.PeriodCount = 0
		}
	}

	d.PrevData = data
}

// onFallingEdge looks for the DCF77 minute marker: second 59 omits the
// carrier reduction, so the marker is a long high run (1.6R..2.0R)
// preceded by the short low run (0.1R..0.3R) of second 58's reduction.
func (d *DCF77) onFallingEdge() {
	const r = dsp.CanonicalRate
	if float64(d.HighCount) >= 1.6*r && float64(d.HighCount) <= 2.0*r &&
		float64(d.LowCount) >= 0.1*r && float64(d.LowCount) <= 0.3*r {
		if !d.GotMinuteMarker {
			d.emitStatus(report.StatusGotMinuteMarker)
		}
		d.PeriodCount = 0
		d.Second = 0
		d.GotMinuteMarker = true
		d.SecondMarkers = 1
	}
	d.LowCount = 0
}

// boolToBit converts a boolean carrier-reduction test into the timecode
// bit value (no carrier = 1, carrier = 0).
func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
