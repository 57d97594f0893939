// Package timeutil provides the date grammar and period helpers shared by the
// flow handlers and the report engine.
//
// All dates are rendered and compared in the Asia/Taipei timezone. The
// canonical rendered form is zero-padded YYYY/MM/DD; user input additionally
// accepts single-digit month/day and "-" separators.
package timeutil

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"
)

const (
	// DateLayout is the canonical rendered date form.
	DateLayout = "2006/01/02"
	// DatetimeLayout is the canonical rendered timestamp form.
	DatetimeLayout = "2006/01/02 15:04:05"
)

var (
	datePattern  = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	rangePattern = regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})\s*-\s*(\d{4}[/-]\d{1,2}[/-]\d{1,2})`)
)

// Location is the timezone all user-facing timestamps are rendered in.
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		slog.Warn("timeutil: Asia/Taipei unavailable, using fixed offset", "error", err)
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// ParseDate parses a single date token. The year must be four digits; month
// and day accept one or two digits and either "/" or "-" separators.
// Out-of-range components (month 13, day 32) are rejected.
func ParseDate(s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, Location)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// ParseDateIn extracts and parses the first date token found anywhere in s.
func ParseDateIn(s string) (time.Time, bool) {
	m := datePattern.FindString(s)
	if m == "" {
		return time.Time{}, false
	}
	t, err := ParseDate(m)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseRange extracts a "date - date" range from s. Both endpoints must be
// valid dates; the original token text is returned alongside the parsed times
// so listings can echo the user's own input.
func ParseRange(s string) (start, end time.Time, startText, endText string, ok bool) {
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, time.Time{}, "", "", false
	}
	start, err := ParseDate(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", "", false
	}
	end, err = ParseDate(m[2])
	if err != nil {
		return time.Time{}, time.Time{}, "", "", false
	}
	return start, end, m[1], m[2], true
}

// FormatDate renders t in the canonical zero-padded date form.
func FormatDate(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// FormatDatetime renders t in the canonical timestamp form.
func FormatDatetime(t time.Time) string {
	return t.In(Location).Format(DatetimeLayout)
}

// DayRange returns the single-day window containing now.
func DayRange(now time.Time) (start, end time.Time) {
	now = now.In(Location)
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)
	return start, start
}

// WeekRange returns the calendar week containing now, Sunday through Saturday.
func WeekRange(now time.Time) (start, end time.Time) {
	now = now.In(Location)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// MonthRange returns the first and last day of the calendar month containing now.
func MonthRange(now time.Time) (start, end time.Time) {
	now = now.In(Location)
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, Location)
	end = start.AddDate(0, 1, -1)
	return start, end
}
