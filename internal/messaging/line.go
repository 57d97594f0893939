package messaging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// LineGateway implements Gateway over the LINE Messaging API.
type LineGateway struct {
	client *messaging_api.MessagingApiAPI
	blob   *messaging_api.MessagingApiBlobAPI
}

// NewLineGateway creates a gateway authenticated with the channel access token.
func NewLineGateway(channelToken string) (*LineGateway, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging client: %w", err)
	}
	blob, err := messaging_api.NewMessagingApiBlobAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &LineGateway{client: client, blob: blob}, nil
}

// Reply sends a text reply tied to an inbound event's reply token.
func (g *LineGateway) Reply(ctx context.Context, replyToken, text string) error {
	_, err := g.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		slog.Error("LineGateway.Reply: reply failed", "error", err)
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// DisplayName resolves the display name for a user ID.
func (g *LineGateway) DisplayName(ctx context.Context, userID string) (string, error) {
	profile, err := g.client.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("get profile %s: %w", userID, err)
	}
	return profile.DisplayName, nil
}

// Content downloads the binary content of a message by its ID.
func (g *LineGateway) Content(ctx context.Context, messageID string) ([]byte, error) {
	resp, err := g.blob.GetMessageContent(messageID)
	if err != nil {
		return nil, fmt.Errorf("get message content %s: %w", messageID, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read message content %s: %w", messageID, err)
	}
	return data, nil
}
