package models

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single entry in the chat transcript. Entries are created
// when the user submits input or a response event arrives, and are never
// edited or removed afterwards.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// SendPayload is the data carried by a send_message event.
type SendPayload struct {
	Command string `json:"command"`
}

// ReceivePayload is the data carried by a receive_message event. History is
// the server's view of the exchange so far and may be empty.
type ReceivePayload struct {
	Response string         `json:"response"`
	History  []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry mirrors one command/response pair as reported by the server.
type HistoryEntry struct {
	Command  string `json:"command"`
	Response string `json:"response"`
	Language string `json:"language,omitempty"`
}

// UploadResult is the outcome of a single upload attempt.
type UploadResult struct {
	Message  string `json:"message"`
	Feedback string `json:"feedback"`
}
