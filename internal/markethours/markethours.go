// Package markethours models the spot forex trading week: the market runs
// continuously from Sunday 22:00 UTC to Friday 22:00 UTC and is closed over
// the weekend gap.
package markethours

import (
	"fmt"
	"time"
)

// Weekly open/close boundary in UTC (Sydney open / New York close).
const (
	OpenHour  = 22 // Sunday 22:00 UTC
	CloseHour = 22 // Friday 22:00 UTC
)

// IsMarketOpen returns true if t falls within the forex trading week
// (Sun 22:00 UTC – Fri 22:00 UTC).
func IsMarketOpen(t time.Time) bool {
	utc := t.In(time.UTC)
	switch utc.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return utc.Hour() >= OpenHour
	case time.Friday:
		return utc.Hour() < CloseHour
	default:
		return true
	}
}

// NextOpen returns the next weekly open (Sunday 22:00 UTC).
// If the market is currently open, returns the open of the following week.
func NextOpen(t time.Time) time.Time {
	utc := t.In(time.UTC)
	d := time.Date(utc.Year(), utc.Month(), utc.Day(), OpenHour, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		if d.Weekday() == time.Sunday && d.After(utc) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NextClose returns the next weekly close (Friday 22:00 UTC).
func NextClose(t time.Time) time.Time {
	utc := t.In(time.UTC)
	d := time.Date(utc.Year(), utc.Month(), utc.Day(), CloseHour, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		if d.Weekday() == time.Friday && d.After(utc) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// TimeUntilOpen returns the duration until the next weekly open.
// Returns 0 if the market is already open.
func TimeUntilOpen(t time.Time) time.Duration {
	if IsMarketOpen(t) {
		return 0
	}
	return NextOpen(t).Sub(t.In(time.UTC))
}

// StatusString returns a human-readable market status.
func StatusString(t time.Time) string {
	if IsMarketOpen(t) {
		d := NextClose(t).Sub(t.In(time.UTC))
		return fmt.Sprintf("Market Open — closes in %s", fmtDur(d))
	}
	next := NextOpen(t)
	return fmt.Sprintf("Market Closed — opens %s %s UTC (%s)",
		next.Weekday().String()[:3], next.Format("15:04"), fmtDur(next.Sub(t.In(time.UTC))))
}

func fmtDur(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
