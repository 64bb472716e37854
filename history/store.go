// Package history persists finished conversations as JSON files under
// <profileDir>/history, one file per conversation.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geminiflow/moa-tui/transcript"
)

// Entry is one persisted transcript message.
type Entry struct {
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Conversation is a persisted session.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []Entry   `json:"entries"`
}

// Summary is the listing view of a stored conversation.
type Summary struct {
	ID        string
	Title     string
	UpdatedAt time.Time
	Turns     int
}

// Store reads and writes conversations under a directory.
type Store struct {
	dir string
	max int
}

// NewStore returns a Store rooted at dir, keeping at most max
// conversations. max <= 0 disables persistence.
func NewStore(dir string, max int) *Store {
	return &Store{dir: dir, max: max}
}

// Enabled reports whether the store persists anything.
func (s *Store) Enabled() bool {
	return s.max > 0
}

const titleLimit = 60

// FromTranscript builds a Conversation from the current transcript. The
// title is the first user message, truncated.
func FromTranscript(t *transcript.Transcript) Conversation {
	now := time.Now()
	conv := Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range t.Messages() {
		if conv.Title == "" && m.Sender == transcript.SenderUser {
			conv.Title = truncateTitle(m.Content)
		}
		conv.Entries = append(conv.Entries, Entry{
			Sender:  m.Sender.String(),
			Content: m.Content,
			Time:    m.Time,
		})
	}
	if conv.Title == "" {
		conv.Title = "(untitled)"
	}
	return conv
}

func truncateTitle(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) > titleLimit {
		return string(r[:titleLimit-1]) + "…"
	}
	return s
}

// Save writes conv to disk and prunes old conversations past the cap.
func (s *Store) Save(conv Conversation) error {
	if !s.Enabled() {
		return nil
	}
	if len(conv.Entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	path := filepath.Join(s.dir, conv.ID+".json")
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	return s.prune()
}

// Load reads one conversation by ID.
func (s *Store) Load(id string) (Conversation, error) {
	var conv Conversation
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		return conv, fmt.Errorf("read conversation: %w", err)
	}
	if err := json.Unmarshal(data, &conv); err != nil {
		return conv, fmt.Errorf("decode conversation: %w", err)
	}
	return conv, nil
}

// List returns summaries of all stored conversations, newest first.
// Unreadable files are skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}
	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		conv, err := s.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		turns := 0
		for _, en := range conv.Entries {
			if en.Sender == transcript.SenderUser.String() {
				turns++
			}
		}
		out = append(out, Summary{
			ID:        conv.ID,
			Title:     conv.Title,
			UpdatedAt: conv.UpdatedAt,
			Turns:     turns,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// prune deletes the oldest conversations beyond the cap.
func (s *Store) prune() error {
	list, err := s.List()
	if err != nil {
		return err
	}
	for _, old := range list[minInt(len(list), s.max):] {
		if err := os.Remove(filepath.Join(s.dir, old.ID+".json")); err != nil {
			return fmt.Errorf("prune conversation: %w", err)
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
