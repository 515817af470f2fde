package web

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-folio/pkg/contact"
	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/hub"
	"github.com/teslashibe/go-folio/pkg/preview"
	"github.com/teslashibe/go-folio/pkg/protocol"
	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// Preview query limits
const (
	previewDefaultSize = 480
	previewDefaultTime = 3.0
	previewMaxTime     = 30.0
	previewSeed        = 1
	themeCookieMaxAge  = 365 * 24 * 60 * 60
)

// HealthResponse is returned by /api/health.
type HealthResponse struct {
	Status   string    `json:"status"`
	Uptime   string    `json:"uptime"`
	Rig      string    `json:"rig"`
	Sessions int       `json:"sessions"`
	Contact  bool      `json:"contact"`
	Scene    hub.Stats `json:"scene"`
	Logs     hub.Stats `json:"logs"`
}

// SectionInfo describes one scroll band.
type SectionInfo struct {
	Section content.Section `json:"section"`
	Title   string          `json:"title"`
	Start   float64         `json:"start"`
	End     float64         `json:"end"`
}

// handleHealth reports liveness and hub counters
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:   "ok",
		Uptime:   time.Since(s.start).Round(time.Second).String(),
		Rig:      s.anim.Rig().Name(),
		Sessions: s.SessionCount(),
		Contact:  s.relay != nil,
		Scene:    s.sceneHub.GetStats(),
		Logs:     s.logHub.GetStats(),
	})
}

// handleContent returns the whole site content
func (s *Server) handleContent(c *fiber.Ctx) error {
	return c.JSON(s.cfg.Site)
}

// handleSections returns the scroll bands in page order
func (s *Server) handleSections(c *fiber.Ctx) error {
	bands := s.anim.Config().Bands
	out := make([]SectionInfo, len(bands))
	for i, b := range bands {
		out[i] = SectionInfo{
			Section: b.Section,
			Title:   b.Section.Title(),
			Start:   b.Start,
			End:     b.End,
		}
	}
	return c.JSON(out)
}

// handleProjects returns the featured projects
func (s *Server) handleProjects(c *fiber.Ctx) error {
	return c.JSON(s.cfg.Site.Projects)
}

// handleProject returns one project by id
func (s *Server) handleProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "project id must be an integer")
	}
	p, ok := s.cfg.Site.Project(id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("project %d not found", id))
	}
	return c.JSON(p)
}

// handleSkills returns skills grouped by category
func (s *Server) handleSkills(c *fiber.Ctx) error {
	return c.JSON(s.cfg.Site.SkillsByCategory())
}

// darkFor returns the browser's theme: the cookie if valid, else the default.
func (s *Server) darkFor(c *fiber.Ctx) bool {
	if dark, ok := theme.Parse(c.Cookies(theme.CookieName)); ok {
		return dark
	}
	return s.themes.Dark()
}

// handleTheme returns the active theme and palette
func (s *Server) handleTheme(c *fiber.Ctx) error {
	dark := s.darkFor(c)
	return c.JSON(protocol.ThemeData{Dark: dark, Palette: theme.PaletteFor(dark)})
}

// handleThemeToggle flips the browser's theme and stores it in a cookie
func (s *Server) handleThemeToggle(c *fiber.Ctx) error {
	dark := !s.darkFor(c)
	c.Cookie(&fiber.Cookie{
		Name:     theme.CookieName,
		Value:    string(theme.NameOf(dark)),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.AddLog(LogTheme, "theme set to "+string(theme.NameOf(dark)))
	return c.JSON(protocol.ThemeData{Dark: dark, Palette: theme.PaletteFor(dark)})
}

// handleContact validates and relays a contact form
func (s *Server) handleContact(c *fiber.Ctx) error {
	if s.relay == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "contact relay not configured")
	}

	var form contact.Form
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}
	if err := form.Validate(); err != nil {
		var fe *contact.FieldError
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
				"field": fe.Field,
			})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	receipt, err := s.relay.Send(c.UserContext(), form)
	if err != nil {
		s.logger.Warn("contact form failed", "error", err)
		s.AddLog(LogError, "contact form failed")
		return fiber.NewError(fiber.StatusBadGateway, "message could not be sent")
	}

	s.AddLog(LogContact, fmt.Sprintf("message from %s via %s", form.Normalize().Name, receipt.Relay))
	return c.JSON(receipt)
}

// handlePreview renders the settled pose for a scroll and pointer as PNG.
//
// Query: scroll (0..1), x and y (-1..1), t (seconds of settling),
// w and h (pixels), theme (dark|light; defaults to the cookie).
func (s *Server) handlePreview(c *fiber.Ctx) error {
	q, err := parsePreviewQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	dark := s.darkFor(c)
	if v := c.Query("theme"); v != "" {
		d, ok := theme.Parse(v)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "theme must be dark or light")
		}
		dark = d
	}

	frame := s.anim.Settle(previewSeed, q.scroll, q.pointer, q.seconds)
	nodes := s.anim.Rig().Nodes(frame.Pose)

	var buf bytes.Buffer
	if err := preview.EncodePNG(&buf, nodes, theme.PaletteFor(dark), q.w, q.h); err != nil {
		if errors.Is(err, preview.ErrSize) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Send(buf.Bytes())
}

type previewQuery struct {
	scroll  float64
	pointer rig.Vec2
	seconds float64
	w, h    int
}

func parsePreviewQuery(c *fiber.Ctx) (previewQuery, error) {
	q := previewQuery{seconds: previewDefaultTime, w: previewDefaultSize, h: previewDefaultSize}

	floats := []struct {
		key      string
		dst      *float64
		min, max float64
	}{
		{"scroll", &q.scroll, 0, 1},
		{"x", &q.pointer.X, -1, 1},
		{"y", &q.pointer.Y, -1, 1},
		{"t", &q.seconds, 0, previewMaxTime},
	}
	for _, f := range floats {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return q, fmt.Errorf("%s must be a number", f.key)
		}
		*f.dst = math.Max(f.min, math.Min(f.max, v))
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"w", &q.w},
		{"h", &q.h},
	}
	for _, f := range ints {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%s must be an integer", f.key)
		}
		*f.dst = v
	}
	return q, nil
}
