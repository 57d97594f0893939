// Package store provides storage backends for the assistant's collections.
//
// Persistence is whole-collection: each of the three record sets
// (conversations, events, expenses) is loaded and saved as one document, and
// the document is the unit of consistency. It includes a JSON flat-file
// backend and an in-memory backend for tests.
package store

import "github.com/ymguan3-boop/line-bot-assistant/internal/models"

// Store is the document store consulted by the flow controller and the
// report engine. Append operations are read-modify-write over the whole
// collection; implementations serialize them internally.
type Store interface {
	// Conversations returns the full conversation log in append order.
	Conversations() ([]models.ConversationLogEntry, error)

	// AppendConversation appends one entry to the conversation log.
	AppendConversation(entry models.ConversationLogEntry) error

	// Events returns all stored calendar events.
	Events() ([]models.CalendarEvent, error)

	// AppendEvent appends one calendar event.
	AppendEvent(event models.CalendarEvent) error

	// Expenses returns all stored expense entries.
	Expenses() ([]models.ExpenseEntry, error)

	// AppendExpense appends one expense entry.
	AppendExpense(expense models.ExpenseEntry) error

	// SaveAttachment persists binary message content under the given file
	// name and returns the stored path.
	SaveAttachment(filename string, data []byte) (string, error)

	// AttachmentPaths lists the stored paths of all saved attachments.
	AttachmentPaths() ([]string, error)
}
