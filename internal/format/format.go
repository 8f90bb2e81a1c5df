// Package format turns raw counts, dates and durations into display strings.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Views abbreviates a count: 1234567 -> "1.2M", 12000 -> "12.0K", 950 -> "950"
func Views(n uint64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatUint(n, 10)
	}
}

// OptionalViews formats a count that the provider may have omitted
func OptionalViews(n *uint64) string {
	if n == nil {
		return "0"
	}
	return Views(*n)
}

// Count renders a full count with thousands separators: 1234567 -> "1,234,567"
func Count(n uint64) string {
	return humanize.Comma(int64(n))
}

// RelativeTime describes t relative to now, e.g. "2 days ago" or "Just now".
// Months are 30 days and years 365 days.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	secs := int64(d / time.Second)
	mins := secs / 60
	hours := mins / 60
	days := hours / 24
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return plural(years, "year")
	case months > 0:
		return plural(months, "month")
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case mins > 0:
		return plural(mins, "minute")
	default:
		return "Just now"
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Date renders t as "Jan 15, 2024"
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Duration converts an ISO-8601 duration ("PT1H2M3S") to "1:02:03" or "4:13".
// Anything unparsable renders as "0:00".
func Duration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Truncate shortens s to at most max runes, appending "..." when cut
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
