package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove         MessageType = "move"
	MessageTypePremove      MessageType = "premove"
	MessageTypePremoveClear MessageType = "premoveClear"
	MessageTypeReady        MessageType = "ready"
	MessageTypeResign       MessageType = "resign"
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeError        MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
