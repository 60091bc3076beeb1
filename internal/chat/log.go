// Package chat holds the in-memory transcript and the send/receive session
// semantics of the Malcolm chat.
package chat

import (
	"sync"

	"github.com/diogo/malcolmweb/internal/models"
)

// Log is the append-only display transcript. Display order equals arrival
// order: send time for user messages, event delivery for assistant messages.
// Entries are never edited or removed, and nothing is persisted across runs.
type Log struct {
	mu      sync.Mutex
	entries []models.ChatMessage
}

// NewLog returns an empty transcript.
func NewLog() *Log {
	return &Log{}
}

// Append adds a message at the end of the transcript.
func (l *Log) Append(msg models.ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

// Messages returns a snapshot of the transcript in order.
func (l *Log) Messages() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ChatMessage, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the most recent message with the given role, if any.
func (l *Log) Last(role models.Role) (models.ChatMessage, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Role == role {
			return l.entries[i], true
		}
	}
	return models.ChatMessage{}, false
}
