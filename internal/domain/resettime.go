package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Reset texts come in two human-readable shapes:
//
//	"6:59pm (America/Sao_Paulo)"          time only, minutes optional
//	"Dec 8 at 4pm (America/Sao_Paulo)"    date qualified, minutes optional
var (
	resetTimeOnlyRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*\(([^)]+)\)`)
	resetDateTimeRe = regexp.MustCompile(`(?i)([A-Za-z]+)\s+(\d{1,2})\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*\(([^)]+)\)`)
)

// ResolveResetText parses a human-readable reset description into an absolute
// instant. Dates carry no year, so resolution is anchored to now: a
// date-qualified instant already in the past rolls to next year, a time-only
// instant already passed today rolls to tomorrow. Unknown timezones, bad
// months, or no pattern match yield ok=false; callers treat that as
// "insufficient data for projection", not a hard failure.
func ResolveResetText(text string, now time.Time) (time.Time, bool) {
	// Date+time first: it is the more specific shape and the time-only
	// pattern would also match its tail.
	if m := resetDateTimeRe.FindStringSubmatch(text); m != nil {
		month, ok := parseMonth(m[1])
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		hour, _ := strconv.Atoi(m[3])
		minute := 0
		if m[4] != "" {
			minute, _ = strconv.Atoi(m[4])
		}
		loc, err := time.LoadLocation(strings.TrimSpace(m[6]))
		if err != nil {
			return time.Time{}, false
		}

		resetAt := time.Date(now.Year(), month, day, to24Hour(hour, m[5]), minute, 0, 0, loc)
		if resetAt.Before(now) {
			resetAt = time.Date(now.Year()+1, month, day, to24Hour(hour, m[5]), minute, 0, 0, loc)
		}
		return resetAt, true
	}

	if m := resetTimeOnlyRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		loc, err := time.LoadLocation(strings.TrimSpace(m[4]))
		if err != nil {
			return time.Time{}, false
		}

		nowThere := now.In(loc)
		year, month, day := nowThere.Date()
		resetAt := time.Date(year, month, day, to24Hour(hour, m[3]), minute, 0, 0, loc)
		if !resetAt.After(nowThere) {
			resetAt = resetAt.AddDate(0, 0, 1)
		}
		return resetAt, true
	}

	return time.Time{}, false
}

func to24Hour(hour int, meridiem string) int {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour != 12 {
			return hour + 12
		}
		return 12
	default:
		if hour == 12 {
			return 0
		}
		return hour
	}
}

func parseMonth(name string) (time.Month, bool) {
	switch strings.ToLower(name) {
	case "jan", "january":
		return time.January, true
	case "feb", "february":
		return time.February, true
	case "mar", "march":
		return time.March, true
	case "apr", "april":
		return time.April, true
	case "may":
		return time.May, true
	case "jun", "june":
		return time.June, true
	case "jul", "july":
		return time.July, true
	case "aug", "august":
		return time.August, true
	case "sep", "september":
		return time.September, true
	case "oct", "october":
		return time.October, true
	case "nov", "november":
		return time.November, true
	case "dec", "december":
		return time.December, true
	default:
		return 0, false
	}
}
