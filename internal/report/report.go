// Package report computes filtered and aggregated views over the events and
// expenses collections and renders them as reply text.
//
// All functions are pure: they take loaded collections and a time window and
// never touch storage.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// EventsInRange renders events whose date falls within [start, end]
// inclusive, sorted ascending by date. startText/endText echo the user's own
// range tokens in the header.
func EventsInRange(events []models.CalendarEvent, start, end time.Time, startText, endText string) string {
	var matched []models.CalendarEvent
	for _, ev := range events {
		d, ok := timeutil.ParseDateIn(ev.Date)
		if !ok {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			matched = append(matched, ev)
		}
	}

	if len(matched) == 0 {
		return fmt.Sprintf("📅 查詢期間: %s ~ %s\n\n目前沒有行程紀錄", startText, endText)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, _ := timeutil.ParseDateIn(matched[i].Date)
		dj, _ := timeutil.ParseDateIn(matched[j].Date)
		return di.Before(dj)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "📅 查詢期間: %s ~ %s\n", startText, endText)
	fmt.Fprintf(&b, "\n共 %d 個行程:\n\n", len(matched))
	writeEventList(&b, matched)
	return strings.TrimSpace(b.String())
}

// AllEvents renders every stored event, sorted descending by date.
func AllEvents(events []models.CalendarEvent) string {
	if len(events) == 0 {
		return "📅 目前沒有行程紀錄"
	}

	sorted := append([]models.CalendarEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := timeutil.ParseDateIn(sorted[i].Date)
		dj, _ := timeutil.ParseDateIn(sorted[j].Date)
		return dj.Before(di)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "📅 所有行程 (共 %d 個):\n\n", len(sorted))
	writeEventList(&b, sorted)
	return strings.TrimSpace(b.String())
}

func writeEventList(b *strings.Builder, events []models.CalendarEvent) {
	for i, ev := range events {
		fmt.Fprintf(b, "%d. %s\n", i+1, ev.Title)
		fmt.Fprintf(b, "   📅 %s\n", ev.Date)
		if ev.Description != "" {
			fmt.Fprintf(b, "   📝 %s\n", ev.Description)
		}
		b.WriteString("\n")
	}
}

// ExpensesInRange renders a line-item listing of expenses dated within
// [start, end] inclusive, with a trailing count and total. periodName labels
// the window in the header (今日, 本週, 本月, 自訂區間).
func ExpensesInRange(expenses []models.ExpenseEntry, start, end time.Time, periodName string) string {
	matched := filterExpenses(expenses, start, end)
	if len(matched) == 0 {
		return fmt.Sprintf("💰 %s花費查詢\n\n目前沒有花費紀錄", periodName)
	}

	var total float64
	var b strings.Builder
	fmt.Fprintf(&b, "💰 %s花費明細\n\n", periodName)
	for i, ex := range matched {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ex.Item)
		fmt.Fprintf(&b, "   💵 NT$ %s\n", FormatAmount(ex.Amount))
		fmt.Fprintf(&b, "   📂 %s\n", ex.Category)
		fmt.Fprintf(&b, "   📅 %s\n\n", ex.Datetime)
		total += ex.Amount
	}
	b.WriteString("───────────────\n")
	fmt.Fprintf(&b, "📊 共 %d 筆\n", len(matched))
	fmt.Fprintf(&b, "💰 總計: NT$ %s", FormatAmount(total))
	return b.String()
}

// CategoryStats renders per-category sums over expenses dated within
// [start, end] inclusive, sorted descending by sum, with the share of total as
// a one-decimal percentage, followed by total, count, and the average rounded
// to the nearest integer.
func CategoryStats(expenses []models.ExpenseEntry, start, end time.Time, periodName string) string {
	matched := filterExpenses(expenses, start, end)
	if len(matched) == 0 {
		return fmt.Sprintf("📊 %s花費統計\n\n目前沒有花費紀錄", periodName)
	}

	sums := make(map[string]float64)
	var total float64
	for _, ex := range matched {
		sums[ex.Category] += ex.Amount
		total += ex.Amount
	}

	type categorySum struct {
		category string
		amount   float64
	}
	var groups []categorySum
	for c, a := range sums {
		groups = append(groups, categorySum{c, a})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].amount > groups[j].amount })

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s花費統計\n\n", periodName)
	for _, g := range groups {
		fmt.Fprintf(&b, "%s: NT$ %s (%.1f%%)\n", g.category, FormatAmount(g.amount), g.amount/total*100)
	}
	b.WriteString("\n───────────────\n")
	fmt.Fprintf(&b, "💰 總計: NT$ %s\n", FormatAmount(total))
	fmt.Fprintf(&b, "📝 筆數: %d 筆\n", len(matched))
	fmt.Fprintf(&b, "📈 平均: NT$ %s", FormatAmount(float64(int64(total/float64(len(matched))+0.5))))
	return b.String()
}

// filterExpenses keeps expenses whose parsed date falls within [start, end]
// inclusive. Entries with an unparseable date are skipped.
func filterExpenses(expenses []models.ExpenseEntry, start, end time.Time) []models.ExpenseEntry {
	var matched []models.ExpenseEntry
	for _, ex := range expenses {
		d, ok := timeutil.ParseDateIn(ex.Date)
		if !ok {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			matched = append(matched, ex)
		}
	}
	return matched
}

// FormatAmount renders an amount with thousands separators, dropping
// trailing fractional zeros (150 → "150", 1234.5 → "1,234.5").
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
