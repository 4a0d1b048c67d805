package date

import (
	"math"
	"strconv"
	"time"
)

// Layout is how due dates are stored, an ISO-8601 calendar date
const Layout = "2006-01-02"

// StartOfDay returns midnight of the day t falls on, in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// ParseISO parses a stored due date
func ParseISO(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Days is the number of calendar days from now until t, negative when t has passed
func Days(t, now time.Time) int {
	from := StartOfDay(now)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, from.Location())
	// rounding absorbs daylight saving shifts
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// Relative describes how far away t is from now, e.g. "today" or "3 days"
func Relative(t, now time.Time) string {
	switch days := Days(t, now); {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "1 day"
	case days < 14:
		return strconv.Itoa(days) + " days"
	// max 1 month
	case days <= 31:
		return strconv.Itoa(days/7) + " weeks"
	// months
	default:
		postfix := ""
		months := days / 31
		if months > 1 {
			postfix = "s"
		}
		return strconv.Itoa(months) + " month" + postfix
	}
}
