package timeutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

func TestParseDateAcceptsBothSeparatorsAndWidths(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026/01/15", date(2026, time.January, 15)},
		{"2026-01-15", date(2026, time.January, 15)},
		{"2026/1/5", date(2026, time.January, 5)},
		{"2026-1-5", date(2026, time.January, 5)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "01/15", "2026/13/01", "2026/00/10", "2026/01/32", "2026/01", "26/01/15", "abc"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): expected error", in)
		}
	}
}

func TestParseDateInFindsEmbeddedToken(t *testing.T) {
	got, ok := ParseDateIn("行程日期 2026/01/15 下午")
	if !ok || !got.Equal(date(2026, time.January, 15)) {
		t.Errorf("ParseDateIn: got %v, ok=%v", got, ok)
	}
	if _, ok := ParseDateIn("no date here"); ok {
		t.Error("ParseDateIn should not match text without a date token")
	}
}

func TestParseRange(t *testing.T) {
	start, end, startText, endText, ok := ParseRange("2026/01/01 - 2026/01/31")
	if !ok {
		t.Fatal("expected range to parse")
	}
	if !start.Equal(date(2026, time.January, 1)) || !end.Equal(date(2026, time.January, 31)) {
		t.Errorf("unexpected range %v - %v", start, end)
	}
	if startText != "2026/01/01" || endText != "2026/01/31" {
		t.Errorf("unexpected echoed tokens %q %q", startText, endText)
	}

	// No surrounding spaces and mixed separators still parse.
	if _, _, _, _, ok := ParseRange("2026-1-1-2026-1-31"); !ok {
		t.Error("compact mixed-separator range should parse")
	}

	for _, in := range []string{"本月", "2026/01/01", "2026/01/01 ~ 2026/01/31"} {
		if _, _, _, _, ok := ParseRange(in); ok {
			t.Errorf("ParseRange(%q): expected no match", in)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(date(2026, time.February, 10))
	if FormatDate(start) != "2026/02/01" || FormatDate(end) != "2026/02/28" {
		t.Errorf("unexpected february window %s - %s", FormatDate(start), FormatDate(end))
	}

	_, end = MonthRange(date(2024, time.February, 1))
	if FormatDate(end) != "2024/02/29" {
		t.Errorf("leap february should end on the 29th, got %s", FormatDate(end))
	}
}

func TestWeekRangeSundayThroughSaturday(t *testing.T) {
	// 2026/01/20 is a Tuesday.
	start, end := WeekRange(date(2026, time.January, 20))
	if FormatDate(start) != "2026/01/18" || FormatDate(end) != "2026/01/24" {
		t.Errorf("unexpected week window %s - %s", FormatDate(start), FormatDate(end))
	}

	// A Sunday is its own week start.
	start, _ = WeekRange(date(2026, time.January, 18))
	if FormatDate(start) != "2026/01/18" {
		t.Errorf("sunday should start its own week, got %s", FormatDate(start))
	}
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(time.Date(2026, time.January, 20, 23, 59, 0, 0, Location))
	if !start.Equal(end) || FormatDate(start) != "2026/01/20" {
		t.Errorf("unexpected day window %v - %v", start, end)
	}
}
