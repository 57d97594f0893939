package flow

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	sendEmailPrompt       = "📧 請輸入收件者 Email:\n例如: example@gmail.com"
	sendEmailInvalidReply = "❌ Email 格式不正確，請重新輸入\n例如: example@gmail.com\n\n或輸入「取消」取消操作"
)

// advanceSendEmail handles the single step of the email-export flow. A
// malformed address re-prompts with the state kept; a well-formed address
// clears the state first, so a transport failure never strands the user in
// the flow.
func (c *Controller) advanceSendEmail(ctx context.Context, userID, message string) string {
	if !emailPattern.MatchString(message) {
		return sendEmailInvalidReply
	}

	c.states.Clear(userID)

	if c.mailer == nil {
		slog.Warn("Controller.advanceSendEmail: no mailer configured", "user_id", userID)
		return "❌ 郵件發送失敗: 未設定郵件服務\n\n請聯絡管理員設定 SMTP"
	}
	if err := c.mailer.SendSummary(ctx, message); err != nil {
		slog.Error("Controller.advanceSendEmail: send failed", "error", err, "user_id", userID)
		return fmt.Sprintf("❌ 郵件發送失敗: %s\n\n請確認:\n1. Email 地址正確\n2. SMTP 設定正確\n3. 網路連線正常", err)
	}

	slog.Info("Controller.advanceSendEmail: summary sent", "user_id", userID, "recipient", message)
	return fmt.Sprintf("✅ 對話紀錄已成功寄送到:\n%s\n\n請檢查您的信箱(包含垃圾郵件匣)", message)
}
