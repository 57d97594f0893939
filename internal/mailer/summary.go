package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/report"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

const tableStyle = `border-collapse: collapse; width: 100%; font-family: Arial, sans-serif;`

// BuildSummaryHTML renders the export report: the full conversation log, then
// the events and expenses sections when non-empty, as zebra-striped tables.
func BuildSummaryHTML(conversations []models.ConversationLogEntry, events []models.CalendarEvent, expenses []models.ExpenseEntry, now time.Time) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta charset="UTF-8"></head><body>`)
	b.WriteString("<h2>📱 LINE 對話紀錄</h2>")
	fmt.Fprintf(&b, "<p><strong>匯出時間:</strong> %s</p>", timeutil.FormatDatetime(now))
	b.WriteString("<hr>")

	b.WriteString("<h3>💬 對話內容</h3>")
	fmt.Fprintf(&b, `<table border="1" cellpadding="8" style="%s">`, tableStyle)
	b.WriteString(`<tr style="background-color: #4CAF50; color: white;"><th>時間</th><th>用戶</th><th>類型</th><th>內容</th></tr>`)
	for i, entry := range conversations {
		content := entry.Content
		if entry.Type != models.MessageTypeText && entry.Type != models.MessageTypeBot {
			content = fmt.Sprintf("[%s] %s", models.AttachmentTypeName(entry.Type), entry.Filename)
		}
		fmt.Fprintf(&b, `<tr style="background-color: %s;"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			rowColor(i), html.EscapeString(entry.Time), html.EscapeString(entry.User), entry.Type, html.EscapeString(content))
	}
	b.WriteString("</table>")

	if len(events) > 0 {
		b.WriteString("<br><h3>📅 行程紀錄</h3>")
		fmt.Fprintf(&b, `<table border="1" cellpadding="8" style="%s">`, tableStyle)
		b.WriteString(`<tr style="background-color: #2196F3; color: white;"><th>標題</th><th>日期</th><th>描述</th><th>建立時間</th></tr>`)
		for i, ev := range events {
			description := ev.Description
			if description == "" {
				description = "-"
			}
			fmt.Fprintf(&b, `<tr style="background-color: %s;"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				rowColor(i), html.EscapeString(ev.Title), html.EscapeString(ev.Date), html.EscapeString(description), html.EscapeString(ev.CreatedAt))
		}
		b.WriteString("</table>")
	}

	if len(expenses) > 0 {
		b.WriteString("<br><h3>💰 花費紀錄</h3>")
		fmt.Fprintf(&b, `<table border="1" cellpadding="8" style="%s">`, tableStyle)
		b.WriteString(`<tr style="background-color: #FF9800; color: white;"><th>項目</th><th>金額</th><th>類別</th><th>日期時間</th></tr>`)
		var total float64
		for i, ex := range expenses {
			fmt.Fprintf(&b, `<tr style="background-color: %s;"><td>%s</td><td>NT$ %s</td><td>%s</td><td>%s</td></tr>`,
				rowColor(i), html.EscapeString(ex.Item), report.FormatAmount(ex.Amount), html.EscapeString(ex.Category), html.EscapeString(ex.Datetime))
			total += ex.Amount
		}
		fmt.Fprintf(&b, `<tr style="background-color: #ffffcc; font-weight: bold;"><td colspan="3" style="text-align: right;">總計</td><td>NT$ %s</td></tr>`,
			report.FormatAmount(total))
		b.WriteString("</table>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func rowColor(i int) string {
	if i%2 == 0 {
		return "#f9f9f9"
	}
	return "white"
}
