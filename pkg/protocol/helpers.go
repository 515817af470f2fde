package protocol

import (
	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/scene"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewInputMessage creates an input message with a normalized scroll value
func NewInputMessage(scroll float64, pointer rig.Vec2) (*Message, error) {
	return NewMessage(TypeInput, InputData{
		Scroll:  &scroll,
		Pointer: &pointer,
	})
}

// NewFrameMessage creates a frame message from a scene snapshot
func NewFrameMessage(s scene.Snapshot) (*Message, error) {
	return NewMessage(TypeFrame, FrameData{
		Seq:        s.Seq,
		Time:       s.Time,
		Scroll:     s.Scroll,
		Section:    s.Section,
		Nodes:      s.Nodes,
		Blinking:   s.Blinking,
		GazeActive: s.GazeActive,
	})
}

// NewSectionMessage creates a section change message
func NewSectionMessage(s content.Section) (*Message, error) {
	return NewMessage(TypeSection, SectionData{
		Section: s,
		Title:   s.Title(),
	})
}

// NewThemeMessage creates a theme message
func NewThemeMessage(dark bool) (*Message, error) {
	return NewMessage(TypeTheme, ThemeData{
		Dark:    dark,
		Palette: theme.PaletteFor(dark),
	})
}

// NewErrorMessage creates an error message
func NewErrorMessage(text string) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Message: text})
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID: id,
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetInputData extracts input data from a message
func (m *Message) GetInputData() (*InputData, error) {
	var data InputData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetFrameData extracts frame data from a message
func (m *Message) GetFrameData() (*FrameData, error) {
	var data FrameData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSectionData extracts section data from a message
func (m *Message) GetSectionData() (*SectionData, error) {
	var data SectionData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetThemeData extracts theme data from a message
func (m *Message) GetThemeData() (*ThemeData, error) {
	var data ThemeData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetErrorData extracts error data from a message
func (m *Message) GetErrorData() (*ErrorData, error) {
	var data ErrorData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
