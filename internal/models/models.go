// Package models defines the core data structures for the assistant.
//
// It includes the persisted record types (conversation log, calendar events,
// expense entries) and the conversation flow state, which are shared across modules.
package models

import "errors"

// MessageType classifies a conversation log entry by its origin content.
type MessageType string

const (
	// MessageTypeText is a plain text message.
	MessageTypeText MessageType = "text"
	// MessageTypeImage is an image attachment.
	MessageTypeImage MessageType = "image"
	// MessageTypeVideo is a video attachment.
	MessageTypeVideo MessageType = "video"
	// MessageTypeAudio is an audio attachment.
	MessageTypeAudio MessageType = "audio"
	// MessageTypeFile is a generic file attachment.
	MessageTypeFile MessageType = "file"
	// MessageTypeBot marks entries authored by the bot itself.
	MessageTypeBot MessageType = "bot"
)

// AttachmentExtension maps a message type to the file extension used when
// saving downloaded content. Unknown types fall back to "dat".
func AttachmentExtension(mt MessageType) string {
	switch mt {
	case MessageTypeImage:
		return "jpg"
	case MessageTypeVideo:
		return "mp4"
	case MessageTypeAudio:
		return "m4a"
	case MessageTypeFile:
		return "file"
	default:
		return "dat"
	}
}

// AttachmentTypeName returns the localized display name for an attachment type.
func AttachmentTypeName(mt MessageType) string {
	switch mt {
	case MessageTypeImage:
		return "圖片"
	case MessageTypeVideo:
		return "影片"
	case MessageTypeAudio:
		return "語音"
	case MessageTypeFile:
		return "檔案"
	default:
		return "附件"
	}
}

// ConversationLogEntry is one appended line of the conversation log.
// Entries are append-only and never mutated after creation.
type ConversationLogEntry struct {
	ID        string      `json:"id"`
	Time      string      `json:"time"`      // localized timestamp string
	Timestamp int64       `json:"timestamp"` // epoch milliseconds
	User      string      `json:"user"`      // display name
	UserID    string      `json:"userId"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content,omitempty"`
	Filename  string      `json:"filename,omitempty"` // set for attachment entries
}

// CalendarEvent is a stored schedule entry. Immutable after creation.
type CalendarEvent struct {
	ID          int64  `json:"id"` // time-based (epoch ms at creation)
	User        string `json:"user"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY/MM/DD as entered
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"` // localized timestamp string
}

// ExpenseEntry is a stored expense record. Immutable after creation.
type ExpenseEntry struct {
	ID       int64   `json:"id"` // time-based (epoch ms at creation)
	User     string  `json:"user"`
	UserID   string  `json:"userId"`
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`     // zero-padded YYYY/MM/DD
	Datetime string  `json:"datetime"` // localized timestamp string
}

// ExpenseCategories is the fixed category enumeration, indexed by menu
// position (1-based in user input).
var ExpenseCategories = []string{"飲食", "交通", "娛樂", "購物", "生活", "其他"}

// ErrUnknownCategory indicates a category selection outside the fixed menu.
var ErrUnknownCategory = errors.New("unknown expense category")

// CategoryByIndex resolves a 1-based menu choice into a category name.
func CategoryByIndex(n int) (string, error) {
	if n < 1 || n > len(ExpenseCategories) {
		return "", ErrUnknownCategory
	}
	return ExpenseCategories[n-1], nil
}

// APIResponse is the standard JSON envelope for HTTP endpoints.
type APIResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Success creates a successful API response.
func Success(message string) APIResponse {
	return APIResponse{Status: "ok", Message: message}
}

// Error creates an error API response.
func Error(message string) APIResponse {
	return APIResponse{Status: "error", Message: message}
}
