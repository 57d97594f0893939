// Package mailer sends the assistant's export report over SMTP.
//
// The report is an HTML document with three sections (conversation log,
// calendar events, expenses) and every saved attachment attached to the mail.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ymguan3-boop/line-bot-assistant/internal/store"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// Mailer builds and dispatches the export report to a recipient address.
type Mailer interface {
	SendSummary(ctx context.Context, recipient string) error
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// Service is the gomail-backed Mailer. It reads the collections from the
// store at send time so the report always reflects the current state.
type Service struct {
	config SMTPConfig
	store  store.Store
	send   func(m *gomail.Message) error
	now    func() time.Time
}

// NewService creates an SMTP mailer reading report data from st.
func NewService(config SMTPConfig, st store.Store) *Service {
	dialer := gomail.NewDialer(config.Host, config.Port, config.User, config.Pass)
	return &Service{
		config: config,
		store:  st,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		now:    func() time.Time { return time.Now().In(timeutil.Location) },
	}
}

// SendSummary builds the tri-section HTML report and sends it to recipient
// with all saved attachments.
func (s *Service) SendSummary(ctx context.Context, recipient string) error {
	conversations, err := s.store.Conversations()
	if err != nil {
		slog.Error("Mailer.SendSummary: conversations read failed, exporting empty log", "error", err)
	}
	events, err := s.store.Events()
	if err != nil {
		slog.Error("Mailer.SendSummary: events read failed, exporting empty list", "error", err)
	}
	expenses, err := s.store.Expenses()
	if err != nil {
		slog.Error("Mailer.SendSummary: expenses read failed, exporting empty list", "error", err)
	}

	now := s.now()
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.User, "LINE Bot 助手")
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("LINE 對話紀錄匯出 - %s", timeutil.FormatDate(now)))
	m.SetBody("text/html", BuildSummaryHTML(conversations, events, expenses, now))

	attachments, err := s.store.AttachmentPaths()
	if err != nil {
		slog.Error("Mailer.SendSummary: attachment listing failed, sending without attachments", "error", err)
	}
	for _, path := range attachments {
		m.Attach(path)
	}

	if err := s.send(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}
	slog.Info("Mailer.SendSummary: mail sent", "recipient", recipient, "attachments", len(attachments))
	return nil
}
