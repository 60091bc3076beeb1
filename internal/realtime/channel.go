// Package realtime implements the persistent event channel to the Malcolm
// service.
//
// The wire format is a JSON envelope {"event": string, "data": object}. The
// client emits send_message events and consumes receive_message events. The
// protocol carries no correlation identifier, so responses are delivered in
// arrival order with no pairing to the send that caused them.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/logging"
	"github.com/diogo/malcolmweb/internal/models"
)

// Envelope is a single named event on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ReceiveHandler consumes inbound receive_message payloads. It runs on the
// channel's read goroutine and must not block.
type ReceiveHandler func(payload models.ReceivePayload)

// Channel is an explicitly constructed, explicitly owned connection. Callers
// create one, hand it to whoever needs it, and Close it when done; there is
// no ambient process-wide connection.
type Channel struct {
	conn    *websocket.Conn
	handler ReceiveHandler

	writeMu sync.Mutex
	mu      sync.Mutex
	closed  bool
	done    chan struct{}
}

// Dial connects to the channel endpoint and registers the inbound handler.
// The handler is registered exactly once, here, independent of how many
// sends follow.
func Dial(url string, onReceive ReceiveHandler) (*Channel, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to channel: %w", err)
	}

	c := &Channel{
		conn:    conn,
		handler: onReceive,
		done:    make(chan struct{}),
	}

	go c.readLoop()

	logging.Info("realtime channel connected", "url", url)
	return c, nil
}

// Emit writes a named event. The write is fire-and-forget from the caller's
// point of view: no acknowledgement is awaited and no retry is attempted.
func (c *Channel) Emit(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode event data: %w", err)
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return apierrors.ErrChannelClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.WriteJSON(Envelope{Event: event, Data: raw}); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// SendCommand emits a send_message event carrying the command text.
func (c *Channel) SendCommand(command string) error {
	return c.Emit(models.EventSendMessage, models.SendPayload{Command: command})
}

// Done is closed when the read loop exits, whether by Close or by a
// transport failure.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close tears the connection down. Safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	return c.conn.Close()
}

// readLoop delivers inbound events to the handler in arrival order. There is
// no buffering layer: the handler sees events exactly as the transport
// delivers them.
func (c *Channel) readLoop() {
	defer close(c.done)

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				logging.Warn("realtime channel read failed", "error", err)
			}
			return
		}

		if env.Event != models.EventReceiveMessage {
			logging.Debug("ignoring unknown event", "event", env.Event)
			continue
		}

		var payload models.ReceivePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			logging.Warn("malformed receive_message payload", "error", err)
			continue
		}

		if c.handler != nil {
			c.handler(payload)
		}
	}
}
