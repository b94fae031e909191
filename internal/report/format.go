package report

import (
	"fmt"

	"github.com/lestrrat-go/strftime"
)

// lineLayout is the strftime pattern used to render a MsgDateTime for the
// console/log sink.
const lineLayout = "%Y-%m-%d %H:%M:%S %z"

var linePattern = strftime.MustNew(lineLayout)

// FormatDateTime renders a MsgDateTime using the strftime layout above.
func FormatDateTime(msg MsgDateTime) string {
	return linePattern.FormatString(msg.DateTime.Time())
}

// FormatLine renders any Message as a single human-readable log line.
func FormatLine(msg Message) string {
	switch m := msg.(type) {
	case MsgStatus:
		return "status: " + m.Text
	case MsgDateTime:
		return "time: " + FormatDateTime(m)
	default:
		return fmt.Sprintf("%v", m)
	}
}
