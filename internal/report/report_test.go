package report

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.Location)
}

func TestEventsInRangeInclusiveAndSorted(t *testing.T) {
	events := []models.CalendarEvent{
		{Title: "late", Date: "2026/01/31"},
		{Title: "out-after", Date: "2026/02/01"},
		{Title: "early", Date: "2026/01/01"},
		{Title: "mid", Date: "2026/01/15", Description: "with note"},
		{Title: "out-before", Date: "2025/12/31"},
	}

	got := EventsInRange(events, day(2026, time.January, 1), day(2026, time.January, 31), "2026/01/01", "2026/01/31")

	if !strings.Contains(got, "共 3 個行程") {
		t.Fatalf("expected 3 events in listing:\n%s", got)
	}
	if strings.Contains(got, "out-before") || strings.Contains(got, "out-after") {
		t.Errorf("out-of-range events leaked into listing:\n%s", got)
	}
	early := strings.Index(got, "early")
	mid := strings.Index(got, "mid")
	late := strings.Index(got, "late")
	if !(early < mid && mid < late) {
		t.Errorf("events not sorted ascending by date:\n%s", got)
	}
	if !strings.Contains(got, "📝 with note") {
		t.Errorf("description line missing:\n%s", got)
	}
}

func TestEventsInRangeEmptySentinel(t *testing.T) {
	got := EventsInRange(nil, day(2026, time.January, 1), day(2026, time.January, 31), "2026/01/01", "2026/01/31")
	if !strings.Contains(got, "目前沒有行程紀錄") {
		t.Errorf("expected empty sentinel:\n%s", got)
	}
	if !strings.Contains(got, "2026/01/01 ~ 2026/01/31") {
		t.Errorf("expected echoed window:\n%s", got)
	}
}

func TestAllEventsDescending(t *testing.T) {
	events := []models.CalendarEvent{
		{Title: "old", Date: "2026/01/05"},
		{Title: "new", Date: "2026/03/01"},
	}
	got := AllEvents(events)
	if strings.Index(got, "new") > strings.Index(got, "old") {
		t.Errorf("expected newest first:\n%s", got)
	}

	if AllEvents(nil) != "📅 目前沒有行程紀錄" {
		t.Errorf("unexpected empty listing: %q", AllEvents(nil))
	}
}

func TestExpensesInRangeTotals(t *testing.T) {
	expenses := []models.ExpenseEntry{
		{Item: "lunch", Amount: 150, Category: "飲食", Date: "2026/01/10", Datetime: "2026/01/10 12:00:00"},
		{Item: "taxi", Amount: 1200.5, Category: "交通", Date: "2026/01/12", Datetime: "2026/01/12 08:00:00"},
		{Item: "outside", Amount: 999, Category: "其他", Date: "2026/02/01", Datetime: "2026/02/01 08:00:00"},
	}

	got := ExpensesInRange(expenses, day(2026, time.January, 1), day(2026, time.January, 31), "本月")
	if !strings.Contains(got, "本月花費明細") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "共 2 筆") {
		t.Errorf("missing count:\n%s", got)
	}
	if !strings.Contains(got, "總計: NT$ 1,350.5") {
		t.Errorf("missing running total:\n%s", got)
	}
	if strings.Contains(got, "outside") {
		t.Errorf("out-of-range expense leaked:\n%s", got)
	}
}

func TestCategoryStatsPercentagesSumToHundred(t *testing.T) {
	expenses := []models.ExpenseEntry{
		{Amount: 300, Category: "飲食", Date: "2026/01/05"},
		{Amount: 200, Category: "交通", Date: "2026/01/06"},
		{Amount: 100, Category: "娛樂", Date: "2026/01/07"},
		{Amount: 66, Category: "其他", Date: "2026/01/08"},
	}

	got := CategoryStats(expenses, day(2026, time.January, 1), day(2026, time.January, 31), "本月")

	percentPattern := regexp.MustCompile(`\((\d+\.\d)%\)`)
	matches := percentPattern.FindAllStringSubmatch(got, -1)
	if len(matches) != 4 {
		t.Fatalf("expected 4 category lines, got %d:\n%s", len(matches), got)
	}
	var sum float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("bad percentage %q", m[1])
		}
		sum += v
	}
	if sum < 99.5 || sum > 100.5 {
		t.Errorf("percentages should sum to ~100, got %.1f:\n%s", sum, got)
	}
}

func TestCategoryStatsSortedAndSummarized(t *testing.T) {
	expenses := []models.ExpenseEntry{
		{Amount: 100, Category: "交通", Date: "2026/01/05"},
		{Amount: 700, Category: "飲食", Date: "2026/01/06"},
		{Amount: 200, Category: "娛樂", Date: "2026/01/07"},
	}

	got := CategoryStats(expenses, day(2026, time.January, 1), day(2026, time.January, 31), "本月")

	food := strings.Index(got, "飲食")
	fun := strings.Index(got, "娛樂")
	transport := strings.Index(got, "交通")
	if !(food < fun && fun < transport) {
		t.Errorf("categories not sorted descending by sum:\n%s", got)
	}
	if !strings.Contains(got, "總計: NT$ 1,000") {
		t.Errorf("missing total:\n%s", got)
	}
	if !strings.Contains(got, "筆數: 3 筆") {
		t.Errorf("missing count:\n%s", got)
	}
	// 1000/3 = 333.33 rounds to 333.
	if !strings.Contains(got, "平均: NT$ 333") {
		t.Errorf("missing rounded average:\n%s", got)
	}
}

func TestCategoryStatsEmpty(t *testing.T) {
	got := CategoryStats(nil, day(2026, time.January, 1), day(2026, time.January, 31), "本月")
	if !strings.Contains(got, "目前沒有花費紀錄") {
		t.Errorf("expected empty sentinel:\n%s", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{150, "150"},
		{0, "0"},
		{1234.5, "1,234.5"},
		{1000000, "1,000,000"},
		{99.99, "99.99"},
		{-1234, "-1,234"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
