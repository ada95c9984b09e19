package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wiqnnc/wiki/internal/search"
)

// en-GB abbreviated month names.
var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec"}

// FormatTimestamp renders an ISO-8601 timestamp in local time as an en-GB
// medium date with a short time, e.g. "15 Oct 2026, 14:03". Empty or
// unparsable input yields "".
func FormatTimestamp(s string) string {
	return formatTimestampIn(s, time.Local)
}

func formatTimestampIn(s string, loc *time.Location) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return ""
	}
	t = t.In(loc)
	return strconv.Itoa(t.Day()) + " " + shortMonths[t.Month()-1] + " " + strconv.Itoa(t.Year()) + ", " + t.Format("15:04")
}

// IndexInfo renders the manifest line, e.g. "20 docs · 15 Oct 2026, 14:03".
// A nil manifest yields "".
func IndexInfo(m *search.Manifest) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%d docs · %s", m.Documents, FormatTimestamp(m.GeneratedAt))
}
