package messaging

import (
	"context"
	"sync"
)

// MockGateway is a Gateway for tests. It records replies and serves canned
// profile names and message content.
type MockGateway struct {
	mu       sync.Mutex
	replies  []string
	Names    map[string]string // userID -> display name
	Payloads map[string][]byte // messageID -> content
	ReplyErr error
	NameErr  error
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Names:    make(map[string]string),
		Payloads: make(map[string][]byte),
	}
}

// Reply records the reply text.
func (g *MockGateway) Reply(ctx context.Context, replyToken, text string) error {
	if g.ReplyErr != nil {
		return g.ReplyErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, text)
	return nil
}

// DisplayName serves a canned display name.
func (g *MockGateway) DisplayName(ctx context.Context, userID string) (string, error) {
	if g.NameErr != nil {
		return "", g.NameErr
	}
	return g.Names[userID], nil
}

// Content serves canned message content.
func (g *MockGateway) Content(ctx context.Context, messageID string) ([]byte, error) {
	return g.Payloads[messageID], nil
}

// Replies returns all recorded reply texts in order.
func (g *MockGateway) Replies() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.replies...)
}
