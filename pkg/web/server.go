// Package web serves the portfolio preview dashboard.
//
// Routes:
//   - /api/*: site content, theme, contact form, PNG preview, activity log
//   - /ws/scene: one ephemeral animation session per connection
//   - /ws/logs: live activity log
//   - /: static files
package web

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/pkg/animator"
	"github.com/teslashibe/go-folio/pkg/contact"
	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/hub"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// Config configures the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// StaticDir is served at "/". Empty disables static files.
	StaticDir string

	// Animator poses every session's character. Required.
	Animator *animator.Animator

	// FrameRate is the scene tick interval for sessions.
	FrameRate time.Duration

	// Relay delivers contact forms. Nil disables /api/contact.
	Relay contact.Relay

	// Site is the content served by /api/content.
	Site content.Site

	// DefaultDark is the theme for browsers without a theme cookie.
	DefaultDark bool

	Logger *slog.Logger
}

// Server is the preview dashboard server
type Server struct {
	app    *fiber.App
	cfg    Config
	logger *slog.Logger
	start  time.Time

	anim   *animator.Animator
	relay  contact.Relay
	themes *theme.Store

	// Hubs for websocket fan-out
	sceneHub *hub.Hub
	logHub   *hub.Hub

	// Live scene sessions by id
	sessions   map[string]*session
	sessionsMu sync.Mutex

	// Log buffer (last maxLogs entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new preview server
func NewServer(cfg Config) (*Server, error) {
	if cfg.Animator == nil {
		return nil, errors.New("web: animator is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.L()
	}
	if len(cfg.Site.Sections) == 0 {
		cfg.Site = content.Default()
	}

	logger := cfg.Logger.With("component", "web")
	themes := theme.NewStore()
	themes.Set(cfg.DefaultDark)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		start:    time.Now(),
		anim:     cfg.Animator,
		relay:    cfg.Relay,
		themes:   themes,
		sceneHub: hub.New("scene", hub.WithLogger(cfg.Logger)),
		logHub:   hub.New("logs", hub.WithLogger(cfg.Logger)),
		sessions: make(map[string]*session),
		logs:     make([]LogEntry, 0, maxLogs),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.sceneHub.OnConnect(s.openSession)
	s.sceneHub.OnDisconnect(s.closeSession)
	s.sceneHub.OnMessage(s.handleSceneMessage)

	app := fiber.New(fiber.Config{
		AppName:               "go-folio preview",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/content", s.handleContent)
	api.Get("/sections", s.handleSections)
	api.Get("/projects", s.handleProjects)
	api.Get("/projects/:id", s.handleProject)
	api.Get("/skills", s.handleSkills)
	api.Get("/theme", s.handleTheme)
	api.Post("/theme/toggle", s.handleThemeToggle)
	api.Post("/contact", s.handleContact)
	api.Get("/preview.png", s.handlePreview)
	api.Get("/logs", s.handleGetLogs)

	// WebSocket routes
	s.sceneHub.RegisterRoutes(app, "/ws/scene")
	s.logHub.RegisterRoutes(app, "/ws/logs")

	// Static files
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	s.app = app
	return s, nil
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hubs and blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("preview server listening", "addr", s.cfg.Addr)

	go s.sceneHub.Run(s.ctx)
	go s.logHub.Run(s.ctx)

	return s.app.Listen(s.cfg.Addr)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server error", "error", err)
		}
	}()
}

// Shutdown stops every session and the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.app.ShutdownWithContext(ctx)
}

// handleError renders errors as {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
