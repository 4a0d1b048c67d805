package date

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// Parse turns user input into the day it refers to, relative to now.
// It understands "today", "tomorrow", weekdays ("fri"), offsets ("3", "in 2 weeks", "1w"),
// days of the month ("21st") and absolute dates ("2024-04-21", "21/04/2024", "21 Apr 2024").
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := StartOfDay(now)
	switch s {
	case "":
		return time.Time{}, ErrParsing
	case "today", "tod", "now":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wkd), nil
	}
	if days, err := parseDayOffset(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	if t, err := parseAbsolute(s, today.Location()); err == nil {
		return t, nil
	}
	if day, err := parseDayOfMonth(s); err == nil {
		return nextDayOfMonth(today, day), nil
	}
	return time.Time{}, ErrParsing
}

// nextWeekday never returns today, "mon" on a monday means next week
func nextWeekday(today time.Time, w time.Weekday) time.Time {
	days := int(w - today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

// nextDayOfMonth is the next time the nth comes around, today included.
// Months too short for nth are skipped, "31st" in april is the 31st of may.
func nextDayOfMonth(today time.Time, nth int) time.Time {
	month := today.Month()
	if nth < today.Day() {
		month++
	}
	for {
		// time.Date rolls overflowing days into the next month
		t := time.Date(today.Year(), month, nth, 0, 0, 0, 0, today.Location())
		if t.Day() == nth {
			return t
		}
		month++
	}
}

func parseAnyTimeFormat(s string, formats []string, loc *time.Location) (time.Time, error) {
	for _, fmt := range formats {
		t, err := time.ParseInLocation(fmt, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

func parseAbsolute(s string, loc *time.Location) (time.Time, error) {
	return parseAnyTimeFormat(s, absoluteFormats, loc)
}

var absoluteFormats = []string{
	Layout,
	"_2/01/06",
	"_2/01/2006",
	"_2 Jan 2006",
	"_2 January 2006",
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// TODO: add calendar months/years so that "1 month" respects month lengths and leap years
func parseDayOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if len(s) >= 1 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	// parse quantity
	{
		s1, n1, err := parseInt(s)
		if err != nil {
			return 0, err
		}
		n = n1
		s = strings.TrimSpace(s1)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := len(s)
		for i, c := range s {
			if c == ' ' {
				endOfWord = i
				break
			}
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] && end == endOfWord {
				multiplier = m.value
				s = s[end:]
				break
			}
		}
		if multiplier == 0 {
			return 0, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
		switch strings.TrimSpace(s) {
		case "ago":
			negative = true
		case "":
		default:
			return 0, errors.New("unexpected trailing input")
		}
	}

	if negative {
		n *= -1
	}
	return n * multiplier, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		fmt := strings.ToLower(i.String())
		if s == fmt || s == fmt[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

func parseDayOfMonth(s string) (int, error) {
	s, n, err := parseInt(s)
	if err != nil {
		return 0, errors.New("failed")
	}
	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10

	var valid bool
	switch {
	case n < 1 || n > 31:
	case lastDigit == 1 && !forceTh:
		valid = s == "st"
	case lastDigit == 2 && !forceTh:
		valid = s == "nd"
	case lastDigit == 3 && !forceTh:
		valid = s == "rd"
	default:
		valid = s == "th"
	}
	if !valid {
		return 0, errors.New("invalid postfix")
	}
	return n, nil
}

// parseInt reads the leading digits of s and returns the rest
func parseInt(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s, 0, err
	}
	return s[i:], n, nil
}
