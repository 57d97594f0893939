// Package testutil provides common test fakes and helpers shared across tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// FixedClock returns a clock function pinned to the given local date-time in
// the assistant's timezone.
func FixedClock(year int, month time.Month, day, hour, min, sec int) func() time.Time {
	t := time.Date(year, month, day, hour, min, sec, 0, timeutil.Location)
	return func() time.Time { return t }
}

// MockMailer records export recipients and can be primed to fail.
type MockMailer struct {
	mu         sync.Mutex
	Recipients []string
	Err        error
}

// SendSummary records the recipient or returns the primed error.
func (m *MockMailer) SendSummary(ctx context.Context, recipient string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recipients = append(m.Recipients, recipient)
	return nil
}

// AssertContains fails the test unless s contains substr.
func AssertContains(t *testing.T, s, substr, context string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: expected %q to contain %q", context, s, substr)
	}
}
