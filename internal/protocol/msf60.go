package protocol

import (
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/report"
)

// MSF60 implements the UK 60 kHz OOK time-code state machine with dual
// A/B data bits per second.
type MSF60 struct {
	Common
}

// NewMSF60 builds an MSF60 machine pushing its messages to queue.
func NewMSF60(queue *report.Queue) *MSF60 {
	return &MSF60{Common{Queue: queue}}
}

// Step consumes one canonical sample's sliced OOK bit (0 or 1).
func (m *MSF60) Step(data int) {
	switch {
	case data == 0 && m.PrevData == 1:
		m.onFallingEdge()
	case data == 1 && m.PrevData == 0:
		m.HighCount = 0
	case data == 1:
		m.HighCount++
	case data == 0:
		m.LowCount++
	}

	if m.GotMinuteMarker {
		m.PeriodCount++
		switch m.PeriodCount {
		case 50:
			if data == 0 {
				m.SecondMarkers++
			}
			m.checkLock()
		case 150:
			m.TimeCode[m.Second] = boolToBit(data == 0)
		case 250:
			m.TimeCodeB[m.Second] = boolToBit(data == 0)
		case 950:
			if m.Second == 59 {
				decodeMSF60(&m.Common)
			} else {
				m.Second++
				m.DateTime = m.DateTime.AddSecond()
			}
			m.emitDateTime()
		case 1000:
			m.PeriodCount = 0
		}
	}

	m.PrevData = data
}

// onFallingEdge looks for the MSF60 minute marker: a full 500ms low
// followed by 500ms high, each within 0.4R..0.6R.
func (m *MSF60) onFallingEdge() {
	const r = dsp.CanonicalRate
	if float64(m.HighCount) >= 0.4*r && float64(m.HighCount) <= 0.6*r &&
		float64(m.LowCount) >= 0.4*r && float64(m.LowCount) <= 0.6*r {
		if !m.GotMinuteMarker {
			m.emitStatus(report.StatusGotMinuteMarker)
		}
		m.PeriodCount = 0
		// Unlike DCF77/TDF, MSF60 starts counting at second 1: the
		// marker second itself (second 0) carries no A/B data bits.
		m.Second = 1
		m.GotMinuteMarker = true
		m.SecondMarkers = 1
	}
	m.LowCount = 0
}
