// Package theme holds the dark/light preference and the colors each theme
// uses for the page and the character.
package theme

import (
	"fmt"
	"strconv"
	"sync"
)

// CookieName is the cookie the preview server keeps the preference in.
const CookieName = "folio_theme"

// Name is the serialized theme value.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Parse maps a cookie or query value to a theme. Unknown values are false.
func Parse(s string) (dark bool, ok bool) {
	switch Name(s) {
	case Dark:
		return true, true
	case Light:
		return false, true
	default:
		return false, false
	}
}

// NameOf returns the theme name for a dark flag.
func NameOf(dark bool) Name {
	if dark {
		return Dark
	}
	return Light
}

// Store is a goroutine-safe dark/light flag. The zero value is light; use
// NewStore for the site default.
type Store struct {
	mu   sync.RWMutex
	dark bool
}

// NewStore returns a store in dark mode.
func NewStore() *Store {
	return &Store{dark: true}
}

// Dark reports whether dark mode is on.
func (s *Store) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Set replaces the flag.
func (s *Store) Set(dark bool) {
	s.mu.Lock()
	s.dark = dark
	s.mu.Unlock()
}

// Toggle flips the flag and returns the new value.
func (s *Store) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = !s.dark
	return s.dark
}

// Color is a #rrggbb hex color.
type Color string

// RGB decodes the color. Malformed values decode as black.
func (c Color) RGB() (r, g, b uint8) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// Hex packs the color as 0xRRGGBB.
func (c Color) Hex() int32 {
	r, g, b := c.RGB()
	return int32(r)<<16 | int32(g)<<8 | int32(b)
}

// Palette is the set of colors for one theme.
type Palette struct {
	Name       Name    `json:"name"`
	Background Color   `json:"background"`
	Text       Color   `json:"text"`
	Body       Color   `json:"body"`
	Skin       Color   `json:"skin"`
	EyeWhite   Color   `json:"eyeWhite"`
	Iris       Color   `json:"iris"`
	Pupil      Color   `json:"pupil"`
	Accent     Color   `json:"accent"`
	Shadow     Color   `json:"shadow"`
	Ambient    float64 `json:"ambient"`
}

// PaletteFor returns the palette for a theme. Character colors are the same
// in both; the page, shadow and ambient light change.
func PaletteFor(dark bool) Palette {
	p := Palette{
		Body:     "#1e293b",
		Skin:     "#d1a68d",
		EyeWhite: "#ffffff",
		Iris:     "#3b82f6",
		Pupil:    "#000000",
		Accent:   "#3b82f6",
	}
	if dark {
		p.Name = Dark
		p.Background = "#050505"
		p.Text = "#ffffff"
		p.Shadow = "#000000"
		p.Ambient = 0.5
	} else {
		p.Name = Light
		p.Background = "#f0f4f8"
		p.Text = "#0f172a"
		p.Shadow = "#94a3b8"
		p.Ambient = 0.8
	}
	return p
}

// String implements fmt.Stringer.
func (p Palette) String() string {
	return fmt.Sprintf("%s(bg=%s ambient=%.1f)", p.Name, p.Background, p.Ambient)
}
