// Package clock assembles a validated timecode into a civil date/time
// with an explicit UTC offset, and provides the one-second dead-reckoning
// advance used when a frame fails parity.
package clock

import "time"

// DateTime is a civil date/time paired with a fixed UTC offset, modeled
// on a timezone-aware QDateTime constructed with an explicit offset from
// UTC.
type DateTime struct {
	t      time.Time
	offset int // seconds east of UTC
}

// New builds a DateTime from civil year/month/day/hour/minute/second
// fields and a UTC offset in seconds, matching
// QDateTime(QDate(year,month,day), QTime(hour,minute), Qt::OffsetFromUTC, offsetSecs).
func New(year, month, day, hour, minute, second, offsetSecs int) DateTime {
	loc := time.FixedZone("", offsetSecs)
	return DateTime{
		t:      time.Date(year, time.Month(month), day, hour, minute, second, 0, loc),
		offset: offsetSecs,
	}
}

// AddSecond returns the date/time one second later, leaving the receiver
// unchanged; it is the dead-reckoning fallback used on a parity failure.
func (d DateTime) AddSecond() DateTime {
	return DateTime{t: d.t.Add(time.Second), offset: d.offset}
}

// Time returns the underlying time.Time, carrying the fixed UTC offset as
// its location.
func (d DateTime) Time() time.Time {
	return d.t
}

// Offset returns the UTC offset in seconds.
func (d DateTime) Offset() int {
	return d.offset
}

// IsZero reports whether this DateTime was never assigned a decoded or
// advanced value.
func (d DateTime) IsZero() bool {
	return d.t.IsZero()
}

// String renders the date/time with its UTC offset, e.g.
// "2024-12-31 13:42:00 +01:00".
func (d DateTime) String() string {
	return d.t.Format("2006-01-02 15:04:05 -07:00")
}
