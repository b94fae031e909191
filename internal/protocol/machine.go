package protocol

import (
	"github.com/f4exb/goradioclock/internal/clock"
	"github.com/f4exb/goradioclock/internal/report"
)

// Machine is the common step-function signature shared by the three
// protocol variants: tagged variants over a common step function, not
// inheritance. Step consumes one canonical sample's already-sliced
// symbol and drives the frame state machine forward.
type Machine interface {
	// Step advances the machine by exactly one canonical (1 ms) sample,
	// given that sample's sliced symbol.
	Step(data int)
	// Reset clears lock state, as happens on a modulation/settings change.
	Reset()
	// Period returns the current period_count (0..999).
	Period() int
	// Locked reports whether the minute marker is currently held.
	Locked() bool
	// Now returns the machine's current DateTime.
	Now() clock.DateTime
}

// Common holds the runtime state shared by all three protocol variants.
type Common struct {
	PrevData int

	LowCount, HighCount, ZeroCount int
	PeriodCount                   int
	Second                        int

	GotMinuteMarker bool
	SecondMarkers   int

	TimeCode  [60]int
	TimeCodeB [60]int
	Bits      [4]int

	DateTime clock.DateTime

	Queue *report.Queue
}

// Reset clears lock state and counters. It does not clear TimeCode /
// TimeCodeB / DateTime: a caller reacquiring the marker will overwrite
// the timecode buffer one bit at a time, and DateTime is dead-reckoned
// forward by whichever machine is active until the next good decode.
func (c *Common) Reset() {
	c.PrevData = 0
	c.LowCount, c.HighCount, c.ZeroCount = 0, 0, 0
	c.PeriodCount = 0
	c.Second = 0
	c.GotMinuteMarker = false
	c.SecondMarkers = 0
	c.emitStatus(report.StatusLookingForMarker)
}

// Period returns the current period_count (0..999).
func (c *Common) Period() int {
	return c.PeriodCount
}

// Locked reports whether the minute marker is currently held.
func (c *Common) Locked() bool {
	return c.GotMinuteMarker
}

// Now returns the machine's current DateTime.
func (c *Common) Now() clock.DateTime {
	return c.DateTime
}

func (c *Common) emitStatus(text string) {
	c.Queue.TryPush(report.MsgStatus{Text: text})
}

func (c *Common) emitDateTime() {
	c.Queue.TryPush(report.MsgDateTime{DateTime: c.DateTime})
}

// checkLock applies the shared lost-lock rule: once past second 10, if
// fewer than 70% of elapsed seconds produced a confirmed second marker,
// assume the signal was lost and resume marker search.
func (c *Common) checkLock() {
	if c.Second > 10 && float64(c.SecondMarkers)/float64(c.Second) < 0.7 {
		c.GotMinuteMarker = false
		c.emitStatus(report.StatusLookingForMarker)
	}
}

// decodeDCFStyle implements the DCF77/TDF decode: LSB-first BCD fields,
// even parity, CET/CEST offset bit 17. DCF77 and TDF share this exact
// decode.
func decodeDCFStyle(c *Common) {
	minute := bcd(&c.TimeCode, 21, 27)
	hour := bcd(&c.TimeCode, 29, 34)
	day := bcd(&c.TimeCode, 36, 41)
	month := bcd(&c.TimeCode, 45, 49)
	year := 2000 + bcd(&c.TimeCode, 50, 57)

	parityError := ""
	if !evenParity(&c.TimeCode, 21, 27, c.TimeCode[28]) {
		parityError = report.StatusMinuteParityError
	}
	if !evenParity(&c.TimeCode, 29, 34, c.TimeCode[35]) {
		parityError = report.StatusHourParityError
	}
	if !evenParity(&c.TimeCode, 36, 57, c.TimeCode[58]) {
		parityError = report.StatusDataParityError
	}

	if parityError == "" {
		offset := 3600
		if c.TimeCode[17] != 0 {
			offset = 2 * 3600
		}
		c.DateTime = clock.New(year, month, day, hour, minute, 0, offset)
		c.emitStatus(report.StatusOK)
	} else {
		c.DateTime = c.DateTime.AddSecond()
		c.emitStatus(parityError)
	}
	c.Second = 0
}

// decodeMSF60 implements the MSF60 decode: MSB-first BCD fields, odd
// parity (via the B timecode), GMT/BST offset bit 58B.
func decodeMSF60(c *Common) {
	minute := bcdMSB(&c.TimeCode, 45, 51)
	hour := bcdMSB(&c.TimeCode, 39, 44)
	day := bcdMSB(&c.TimeCode, 30, 35)
	month := bcdMSB(&c.TimeCode, 25, 29)
	year := 2000 + bcdMSB(&c.TimeCode, 17, 24)

	// The hour/minute parity text is used both for the first check and for
	// the last one (the year, 17..24), so a failing year check is reported
	// under the same text as a failing hour/minute check. This is a probable ambiguity and is left as-is rather than
	// fixed here. xorBits always reads the A timecode; only the parity
	// bit itself comes from the B stream.
	parityError := ""
	if !oddParity(&c.TimeCode, 39, 51, c.TimeCodeB[57]) {
		parityError = report.StatusHourMinuteParityErr
	}
	if !oddParity(&c.TimeCode, 25, 35, c.TimeCodeB[55]) {
		parityError = report.StatusDayMonthParityError
	}
	if !oddParity(&c.TimeCode, 17, 24, c.TimeCodeB[54]) {
		parityError = report.StatusHourMinuteParityErr
	}

	if parityError == "" {
		offset := 0
		if c.TimeCodeB[58] != 0 {
			offset = 3600
		}
		c.DateTime = clock.New(year, month, day, hour, minute, 0, offset)
		c.emitStatus(report.StatusOK)
	} else {
		c.DateTime = c.DateTime.AddSecond()
		c.emitStatus(parityError)
	}
	c.Second = 0
}
