// Package format renders durations, prices and times the way the result
// and detail views display them.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Duration renders minutes as "2h 5m".
func Duration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Currency renders a USD amount with en-US grouping, e.g. "$1,234.50".
func Currency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	formatted := "$" + humanize.FormatFloat("#,###.##", amount)
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Time renders the time-of-day part of an upstream timestamp on a 12-hour
// clock, e.g. "08:30 AM". Unparseable input comes back unchanged.
func Time(value string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("03:04 PM")
		}
	}
	return value
}
