package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/diogo/malcolmweb/internal/models"
)

func TestLogAppendPreservesOrder(t *testing.T) {
	log := NewLog()
	log.Append(models.ChatMessage{Role: models.RoleUser, Text: "hello"})
	log.Append(models.ChatMessage{Role: models.RoleAssistant, Text: "hi"})
	log.Append(models.ChatMessage{Role: models.RoleUser, Text: "hello"})

	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	// Duplicates are kept; nothing is de-duplicated or reordered.
	if msgs[0].Text != "hello" || msgs[1].Text != "hi" || msgs[2].Text != "hello" {
		t.Errorf("unexpected order: %v", msgs)
	}
}

func TestLogSnapshotIsCopy(t *testing.T) {
	log := NewLog()
	log.Append(models.ChatMessage{Role: models.RoleUser, Text: "a"})

	snap := log.Messages()
	snap[0].Text = "mutated"

	if log.Messages()[0].Text != "a" {
		t.Error("snapshot mutation leaked into the log")
	}
}

func TestLogLast(t *testing.T) {
	log := NewLog()

	if _, ok := log.Last(models.RoleAssistant); ok {
		t.Error("empty log should have no last assistant message")
	}

	log.Append(models.ChatMessage{Role: models.RoleAssistant, Text: "first"})
	log.Append(models.ChatMessage{Role: models.RoleUser, Text: "q"})
	log.Append(models.ChatMessage{Role: models.RoleAssistant, Text: "second"})

	msg, ok := log.Last(models.RoleAssistant)
	if !ok || msg.Text != "second" {
		t.Errorf("Last(assistant) = %v, %v", msg, ok)
	}
}

func TestLogConcurrentAppends(t *testing.T) {
	log := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log.Append(models.ChatMessage{Role: models.RoleUser, Text: fmt.Sprintf("msg-%d", n)})
		}(i)
	}
	wg.Wait()

	if log.Len() != 50 {
		t.Errorf("len = %d, want 50", log.Len())
	}
}
