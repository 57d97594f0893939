// Package messaging abstracts the messaging platform behind a small gateway
// interface so the event processing pipeline can be tested without the
// platform.
package messaging

import "context"

// Gateway is the outbound surface of the messaging platform: replying to an
// event, resolving a user's display name, and downloading binary message
// content.
type Gateway interface {
	// Reply sends a text reply tied to an inbound event's reply token.
	Reply(ctx context.Context, replyToken, text string) error

	// DisplayName resolves the display name for a user ID.
	DisplayName(ctx context.Context, userID string) (string, error)

	// Content downloads the binary content of a message by its ID.
	Content(ctx context.Context, messageID string) ([]byte, error)
}
