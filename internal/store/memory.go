package store

import (
	"sync"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
)

// InMemoryStore is a Store backed by slices, used in tests.
type InMemoryStore struct {
	mu            sync.Mutex
	conversations []models.ConversationLogEntry
	events        []models.CalendarEvent
	expenses      []models.ExpenseEntry
	attachments   map[string][]byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{attachments: make(map[string][]byte)}
}

// Conversations returns the conversation log in append order.
func (s *InMemoryStore) Conversations() ([]models.ConversationLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ConversationLogEntry(nil), s.conversations...), nil
}

// AppendConversation appends one conversation log entry.
func (s *InMemoryStore) AppendConversation(entry models.ConversationLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append(s.conversations, entry)
	return nil
}

// Events returns all stored calendar events.
func (s *InMemoryStore) Events() ([]models.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CalendarEvent(nil), s.events...), nil
}

// AppendEvent appends one calendar event.
func (s *InMemoryStore) AppendEvent(event models.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Expenses returns all stored expense entries.
func (s *InMemoryStore) Expenses() ([]models.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ExpenseEntry(nil), s.expenses...), nil
}

// AppendExpense appends one expense entry.
func (s *InMemoryStore) AppendExpense(expense models.ExpenseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, expense)
	return nil
}

// SaveAttachment stores binary content keyed by file name.
func (s *InMemoryStore) SaveAttachment(filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments[filename] = data
	return filename, nil
}

// AttachmentPaths lists the names of all saved attachments.
func (s *InMemoryStore) AttachmentPaths() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var paths []string
	for name := range s.attachments {
		paths = append(paths, name)
	}
	return paths, nil
}
