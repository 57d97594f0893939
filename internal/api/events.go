package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// unknownUserName is logged when the profile fetch fails.
const unknownUserName = "Unknown User"

// processEvent translates one webhook event into the business pipeline. Only
// message and postback events are handled; everything else is ignored.
func (s *Server) processEvent(ctx context.Context, ev webhook.EventInterface) error {
	switch e := ev.(type) {
	case webhook.MessageEvent:
		userID := sourceUserID(e.Source)
		ts := time.UnixMilli(e.Timestamp).In(timeutil.Location)
		userName := s.displayName(ctx, userID)

		switch m := e.Message.(type) {
		case webhook.TextMessageContent:
			return s.handleTextMessage(ctx, userID, userName, m.Id, ts, strings.TrimSpace(m.Text), e.ReplyToken)
		case webhook.ImageMessageContent:
			return s.handleAttachment(ctx, userID, userName, m.Id, ts, models.MessageTypeImage, e.ReplyToken)
		case webhook.VideoMessageContent:
			return s.handleAttachment(ctx, userID, userName, m.Id, ts, models.MessageTypeVideo, e.ReplyToken)
		case webhook.AudioMessageContent:
			return s.handleAttachment(ctx, userID, userName, m.Id, ts, models.MessageTypeAudio, e.ReplyToken)
		case webhook.FileMessageContent:
			return s.handleAttachment(ctx, userID, userName, m.Id, ts, models.MessageTypeFile, e.ReplyToken)
		default:
			slog.Debug("Server.processEvent: unhandled message type", "type", fmt.Sprintf("%T", m), "user_id", userID)
			return nil
		}

	case webhook.PostbackEvent:
		slog.Info("Server.processEvent: postback received", "data", e.Postback.Data)
		return nil

	default:
		slog.Debug("Server.processEvent: ignoring event type", "type", fmt.Sprintf("%T", e))
		return nil
	}
}

// handleTextMessage logs the inbound message, advances the flow controller,
// replies, and logs the bot reply.
func (s *Server) handleTextMessage(ctx context.Context, userID, userName, messageID string, ts time.Time, text, replyToken string) error {
	s.logConversation(models.ConversationLogEntry{
		ID:        messageID,
		Time:      timeutil.FormatDatetime(ts),
		Timestamp: ts.UnixMilli(),
		User:      userName,
		UserID:    userID,
		Type:      models.MessageTypeText,
		Content:   text,
	})

	reply := s.controller.Advance(ctx, userID, userName, text)

	if err := s.gateway.Reply(ctx, replyToken, reply); err != nil {
		slog.Error("Server.handleTextMessage: reply failed", "error", err, "user_id", userID)
	}
	s.logBotReply(reply)
	return nil
}

// handleAttachment downloads and stores binary message content, logs the
// attachment entry, and acknowledges receipt to the user.
func (s *Server) handleAttachment(ctx context.Context, userID, userName, messageID string, ts time.Time, kind models.MessageType, replyToken string) error {
	filename := fmt.Sprintf("%s_%s_%s.%s", ts.Format("20060102"), userName, messageID, models.AttachmentExtension(kind))

	data, err := s.gateway.Content(ctx, messageID)
	if err != nil {
		slog.Error("Server.handleAttachment: download failed", "error", err, "message_id", messageID)
		filename = "attachment_" + messageID
	} else if _, err := s.store.SaveAttachment(filename, data); err != nil {
		slog.Error("Server.handleAttachment: save failed", "error", err, "filename", filename)
	}

	s.logConversation(models.ConversationLogEntry{
		ID:        messageID,
		Time:      timeutil.FormatDatetime(ts),
		Timestamp: ts.UnixMilli(),
		User:      userName,
		UserID:    userID,
		Type:      kind,
		Filename:  filename,
	})

	reply := fmt.Sprintf("✅ 已收到您的%s: %s", models.AttachmentTypeName(kind), filename)
	if err := s.gateway.Reply(ctx, replyToken, reply); err != nil {
		slog.Error("Server.handleAttachment: reply failed", "error", err, "user_id", userID)
	}
	s.logBotReply(reply)
	return nil
}

// displayName resolves the user's display name, degrading to a placeholder
// when the profile fetch fails.
func (s *Server) displayName(ctx context.Context, userID string) string {
	name, err := s.gateway.DisplayName(ctx, userID)
	if err != nil || name == "" {
		if err != nil {
			slog.Error("Server.displayName: profile fetch failed", "error", err, "user_id", userID)
		}
		return unknownUserName
	}
	return name
}

func (s *Server) logConversation(entry models.ConversationLogEntry) {
	if err := s.store.AppendConversation(entry); err != nil {
		slog.Error("Server.logConversation: append failed", "error", err, "user_id", entry.UserID)
	}
}

func (s *Server) logBotReply(text string) {
	now := s.now()
	s.logConversation(models.ConversationLogEntry{
		ID:        uuid.NewString(),
		Time:      timeutil.FormatDatetime(now),
		Timestamp: now.UnixMilli(),
		User:      "Bot",
		UserID:    "bot",
		Type:      models.MessageTypeBot,
		Content:   text,
	})
}

func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
