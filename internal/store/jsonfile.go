package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
)

// Collection file names under the data directory.
const (
	conversationsFile = "conversations.json"
	eventsFile        = "events.json"
	expensesFile      = "expenses.json"
)

// FileStore is the JSON flat-file backend. Each collection lives in one file
// under dataDir and is rewritten wholesale on every append; attachments are
// stored as individual files under attachmentsDir.
type FileStore struct {
	mu             sync.Mutex
	dataDir        string
	attachmentsDir string
}

// NewFileStore creates a FileStore rooted at dataDir, creating the data and
// attachment directories and empty collection files if missing.
func NewFileStore(dataDir, attachmentsDir string) (*FileStore, error) {
	slog.Debug("FileStore.New: initializing", "data_dir", dataDir, "attachments_dir", attachmentsDir)
	for _, dir := range []string{dataDir, attachmentsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	fs := &FileStore{dataDir: dataDir, attachmentsDir: attachmentsDir}
	for _, name := range []string{conversationsFile, eventsFile, expensesFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := fs.writeFile(path, []byte("[]")); err != nil {
				return nil, fmt.Errorf("initialize collection %s: %w", name, err)
			}
		}
	}
	return fs, nil
}

// load decodes one collection file into out. Read or decode failures degrade
// to an empty collection so a corrupt file never takes the bot down; the
// failure is logged and the next append overwrites the file.
func (fs *FileStore) load(name string, out interface{}) {
	path := filepath.Join(fs.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("FileStore.load: read failed, using empty collection", "error", err, "file", name)
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Error("FileStore.load: decode failed, using empty collection", "error", err, "file", name)
	}
}

// save encodes one collection and replaces its file via a temp-file rename so
// a crash mid-write never leaves a truncated document.
func (fs *FileStore) save(name string, in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	return fs.writeFile(filepath.Join(fs.dataDir, name), data)
}

func (fs *FileStore) writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Conversations returns the full conversation log in append order.
func (fs *FileStore) Conversations() ([]models.ConversationLogEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries := []models.ConversationLogEntry{}
	fs.load(conversationsFile, &entries)
	return entries, nil
}

// AppendConversation appends one entry to the conversation log.
func (fs *FileStore) AppendConversation(entry models.ConversationLogEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries := []models.ConversationLogEntry{}
	fs.load(conversationsFile, &entries)
	entries = append(entries, entry)
	if err := fs.save(conversationsFile, entries); err != nil {
		slog.Error("FileStore.AppendConversation: save failed", "error", err, "user_id", entry.UserID)
		return err
	}
	return nil
}

// Events returns all stored calendar events.
func (fs *FileStore) Events() ([]models.CalendarEvent, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	events := []models.CalendarEvent{}
	fs.load(eventsFile, &events)
	return events, nil
}

// AppendEvent appends one calendar event.
func (fs *FileStore) AppendEvent(event models.CalendarEvent) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	events := []models.CalendarEvent{}
	fs.load(eventsFile, &events)
	events = append(events, event)
	if err := fs.save(eventsFile, events); err != nil {
		slog.Error("FileStore.AppendEvent: save failed", "error", err, "user_id", event.UserID)
		return err
	}
	return nil
}

// Expenses returns all stored expense entries.
func (fs *FileStore) Expenses() ([]models.ExpenseEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	expenses := []models.ExpenseEntry{}
	fs.load(expensesFile, &expenses)
	return expenses, nil
}

// AppendExpense appends one expense entry.
func (fs *FileStore) AppendExpense(expense models.ExpenseEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	expenses := []models.ExpenseEntry{}
	fs.load(expensesFile, &expenses)
	expenses = append(expenses, expense)
	if err := fs.save(expensesFile, expenses); err != nil {
		slog.Error("FileStore.AppendExpense: save failed", "error", err, "user_id", expense.UserID)
		return err
	}
	return nil
}

// SaveAttachment persists binary message content and returns the stored path.
func (fs *FileStore) SaveAttachment(filename string, data []byte) (string, error) {
	path := filepath.Join(fs.attachmentsDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("FileStore.SaveAttachment: write failed", "error", err, "filename", filename)
		return "", err
	}
	slog.Info("FileStore.SaveAttachment: stored", "filename", filename)
	return path, nil
}

// AttachmentPaths lists the stored paths of all saved attachments, sorted by name.
func (fs *FileStore) AttachmentPaths() ([]string, error) {
	dirents, err := os.ReadDir(fs.attachmentsDir)
	if err != nil {
		slog.Error("FileStore.AttachmentPaths: read dir failed", "error", err)
		return nil, err
	}
	var paths []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(fs.attachmentsDir, d.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
