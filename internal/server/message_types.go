package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeAnalyze MessageType = "analyze"

	// Server to client messages
	MessageTypeResult   MessageType = "result"
	MessageTypeProgress MessageType = "progress"
	MessageTypeError    MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
