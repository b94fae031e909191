// Package report carries the two outbound message kinds the core emits --
// status-change text and per-second date/time -- to an external consumer
// over a non-blocking queue. Messages are plain value carriers with no
// back-references, so the consumer owns them after push.
package report

import "github.com/f4exb/goradioclock/internal/clock"

// Status text constants.
const (
	StatusLookingForMarker = "Looking for minute marker"
	StatusGotMinuteMarker  = "Got minute marker"
	StatusOK               = "OK"

	StatusMinuteParityError    = "Minute parity error"
	StatusHourParityError      = "Hour parity error"
	StatusDataParityError      = "Data parity error"
	StatusHourMinuteParityErr  = "Hour/minute parity error"
	StatusDayMonthParityError  = "Day/month parity error"
)

// Message is the common type pushed to the outbound Queue.
type Message interface {
	isMessage()
}

// MsgStatus reports a status-change event: lock acquired/lost, a
// successful decode, or a parity failure.
type MsgStatus struct {
	Text string
}

func (MsgStatus) isMessage() {}

// MsgDateTime reports the current civil date/time, pushed once per locked
// second at period_count == 950.
type MsgDateTime struct {
	DateTime clock.DateTime
}

func (MsgDateTime) isMessage() {}
