package chat

import (
	"github.com/diogo/malcolmweb/internal/logging"
	"github.com/diogo/malcolmweb/internal/models"
)

// Sender is the outbound side of the realtime channel. *realtime.Channel
// satisfies it.
type Sender interface {
	SendCommand(command string) error
}

// Session binds the transcript to a realtime channel. Sending is a two-state
// machine: the session is idle, a send appends the user's text and emits it,
// and the session is idle again immediately. No acknowledgement is awaited,
// so any number of sends may be in flight.
//
// Responses carry no correlation identifier. An inbound response is appended
// in delivery order whether or not a send is outstanding, so with several
// sends in flight a response cannot be attributed to the send that caused it.
type Session struct {
	log     *Log
	sender  Sender
	updates chan struct{}
}

// NewSession creates a session around an empty transcript. Bind must be
// called before sends reach the wire.
func NewSession() *Session {
	return &Session{
		log:     NewLog(),
		updates: make(chan struct{}, 1),
	}
}

// Bind attaches the outbound channel.
func (s *Session) Bind(sender Sender) {
	s.sender = sender
}

// Log returns the session transcript.
func (s *Session) Log() *Log {
	return s.log
}

// Updates signals that the transcript changed. Notifications coalesce; the
// transcript itself is the source of truth.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Send appends the user's text to the transcript and emits it. The user
// entry is recorded regardless of network outcome; emit failures only reach
// the diagnostic log. There is no validation of the text, empty included.
func (s *Session) Send(text string) {
	s.log.Append(models.ChatMessage{Role: models.RoleUser, Text: text})
	s.notify()

	if s.sender == nil {
		logging.Warn("send with no channel bound", "command", text)
		return
	}
	if err := s.sender.SendCommand(text); err != nil {
		logging.Warn("send_message emit failed", "error", err)
	}
}

// HandleReceive is the inbound receive_message handler. It is registered
// exactly once, at channel dial time, independent of how many sends occur.
func (s *Session) HandleReceive(payload models.ReceivePayload) {
	s.log.Append(models.ChatMessage{Role: models.RoleAssistant, Text: payload.Response})
	s.notify()
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
