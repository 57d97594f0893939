package mailer

import (
	"context"
	"errors"
	"mime"
	"strings"
	"testing"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/store"
	"github.com/ymguan3-boop/line-bot-assistant/internal/testutil"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

func exportTime() time.Time {
	return time.Date(2026, time.January, 20, 12, 30, 0, 0, timeutil.Location)
}

func TestBuildSummaryHTMLSections(t *testing.T) {
	conversations := []models.ConversationLogEntry{
		{Time: "2026/01/20 12:00:00", User: "Alice", Type: models.MessageTypeText, Content: "hello"},
		{Time: "2026/01/20 12:01:00", User: "Alice", Type: models.MessageTypeImage, Filename: "20260120_Alice_m9.jpg"},
		{Time: "2026/01/20 12:01:05", User: "Bot", Type: models.MessageTypeBot, Content: "已收到"},
	}
	events := []models.CalendarEvent{
		{Title: "Meeting", Date: "2026/01/15", CreatedAt: "2026/01/10 09:00:00"},
	}
	expenses := []models.ExpenseEntry{
		{Item: "午餐", Amount: 150, Category: "飲食", Datetime: "2026/01/20 12:00:00"},
		{Item: "計程車", Amount: 350, Category: "交通", Datetime: "2026/01/20 13:00:00"},
	}

	html := BuildSummaryHTML(conversations, events, expenses, exportTime())

	for _, want := range []string{
		"匯出時間:</strong> 2026/01/20 12:30:00",
		"💬 對話內容",
		"hello",
		"[圖片] 20260120_Alice_m9.jpg",
		"📅 行程紀錄",
		"Meeting",
		"<td>-</td>", // empty description renders as dash
		"💰 花費紀錄",
		"NT$ 150",
		"NT$ 500", // expenses total row
	} {
		if !strings.Contains(html, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestBuildSummaryHTMLOmitsEmptySections(t *testing.T) {
	html := BuildSummaryHTML(nil, nil, nil, exportTime())
	if !strings.Contains(html, "💬 對話內容") {
		t.Error("conversation section is always present")
	}
	if strings.Contains(html, "行程紀錄") || strings.Contains(html, "花費紀錄") {
		t.Error("empty events/expenses sections should be omitted")
	}
}

func TestBuildSummaryHTMLEscapesContent(t *testing.T) {
	conversations := []models.ConversationLogEntry{
		{User: "<script>", Type: models.MessageTypeText, Content: "a<b>c"},
	}
	html := BuildSummaryHTML(conversations, nil, nil, exportTime())
	if strings.Contains(html, "<script>") || strings.Contains(html, "a<b>c") {
		t.Error("user content must be HTML-escaped")
	}
}

func TestSendSummaryBuildsMessage(t *testing.T) {
	st := store.NewInMemoryStore()
	st.AppendConversation(models.ConversationLogEntry{User: "Alice", Type: models.MessageTypeText, Content: "hi"})
	st.SaveAttachment("a.jpg", []byte{1})

	var sent *gomail.Message
	svc := NewService(SMTPConfig{Host: "smtp.test", Port: 587, User: "bot@test"}, st)
	svc.now = testutil.FixedClock(2026, time.January, 20, 12, 30, 0)
	svc.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	if err := svc.SendSummary(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("SendSummary: %v", err)
	}
	if sent == nil {
		t.Fatal("no message dispatched")
	}
	if got := sent.GetHeader("To"); len(got) != 1 || got[0] != "a@b.com" {
		t.Errorf("unexpected To header: %v", got)
	}
	// The subject carries non-ASCII text, so the stored header is RFC 2047
	// encoded and must be decoded before inspection.
	subject := decodeHeader(t, sent.GetHeader("Subject"))
	if !strings.Contains(subject, "LINE 對話紀錄匯出") || !strings.Contains(subject, "2026/01/20") {
		t.Errorf("unexpected Subject header: %q", subject)
	}
}

func decodeHeader(t *testing.T, values []string) string {
	t.Helper()
	if len(values) != 1 {
		t.Fatalf("expected a single header value, got %v", values)
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(values[0])
	if err != nil {
		t.Fatalf("decode header %q: %v", values[0], err)
	}
	return decoded
}

func TestNewServiceWiresTransport(t *testing.T) {
	svc := NewService(SMTPConfig{Host: "smtp.test", Port: 587, User: "bot@test"}, store.NewInMemoryStore())
	if svc.send == nil {
		t.Fatal("expected a dial-and-send transport to be configured")
	}
}

func TestSendSummaryWrapsTransportError(t *testing.T) {
	svc := NewService(SMTPConfig{Host: "smtp.test", Port: 587, User: "bot@test"}, store.NewInMemoryStore())
	svc.send = func(m *gomail.Message) error { return errors.New("dial tcp: refused") }

	err := svc.SendSummary(context.Background(), "a@b.com")
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}
