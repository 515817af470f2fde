// Package protocol defines the WebSocket message types exchanged between the
// browser and the preview server.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Browser → Server messages
	TypeInput MessageType = "input" // Scroll and pointer sample

	// Server → Browser messages
	TypeFrame   MessageType = "frame"   // Animated pose
	TypeSection MessageType = "section" // Section in view changed
	TypeTheme   MessageType = "theme"   // Theme changed
	TypeError   MessageType = "error"   // Rejected message

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("failed to parse message: missing type")
	}
	return &msg, nil
}

// =============================================================================
// Browser → Server Message Types
// =============================================================================

// InputData is one input sample. Either Scroll or Metrics sets the scroll
// progress; Metrics wins when both are present.
type InputData struct {
	Scroll  *float64       `json:"scroll,omitempty"`  // Normalized 0..1
	Metrics *ScrollMetrics `json:"metrics,omitempty"` // Raw container metrics
	Pointer *rig.Vec2      `json:"pointer,omitempty"` // Normalized -1..1, +y up
}

// ScrollMetrics are the scroll container's dimensions in pixels.
type ScrollMetrics struct {
	Top          float64 `json:"top"`
	Height       float64 `json:"height"`
	ClientHeight float64 `json:"client_height"`
}

// =============================================================================
// Server → Browser Message Types
// =============================================================================

// FrameData is one animated frame.
type FrameData struct {
	Seq        uint64          `json:"seq"`
	Time       float64         `json:"time"`
	Scroll     float64         `json:"scroll"`
	Section    content.Section `json:"section"`
	Nodes      []rig.Node      `json:"nodes"`
	Blinking   bool            `json:"blinking"`
	GazeActive bool            `json:"gaze_active"`
}

// SectionData announces the section in view.
type SectionData struct {
	Section content.Section `json:"section"`
	Title   string          `json:"title"`
}

// ThemeData carries the active theme and its palette.
type ThemeData struct {
	Dark    bool          `json:"dark"`
	Palette theme.Palette `json:"palette"`
}

// ErrorData explains a rejected message.
type ErrorData struct {
	Message string `json:"message"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
