// Folio serves the portfolio preview: site content, the contact relay and
// one animated character session per browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-folio/internal/config"
	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/internal/otel"
	"github.com/teslashibe/go-folio/pkg/contact"
	"github.com/teslashibe/go-folio/pkg/theme"
	"github.com/teslashibe/go-folio/pkg/web"
)

func main() {
	cfg, light, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(2)
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, !light, logger); err != nil {
		logger.Error("folio stopped", "error", err)
		os.Exit(1)
	}
}

// parseFlags loads the environment and applies command line overrides.
func parseFlags() (*config.Config, bool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, false, err
	}

	port := flag.Int("port", cfg.Port, "HTTP port (overrides FOLIO_PORT)")
	static := flag.String("static", cfg.StaticDir, "Static files directory, empty to disable")
	level := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	rigName := flag.String("rig", cfg.Rig, "Character rig: simple, articulated")
	preset := flag.String("preset", cfg.Preset, "Animation preset: default, calm, lively")
	rate := flag.Duration("rate", cfg.Rate, "Scene tick interval")
	light := flag.Bool("light", false, "Light theme for browsers without a theme cookie")
	flag.Parse()

	cfg.Port, cfg.StaticDir, cfg.LogLevel = *port, *static, *level
	cfg.Rig, cfg.Preset, cfg.Rate = *rigName, *preset, *rate
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, *light, nil
}

func run(ctx context.Context, cfg *config.Config, dark bool, logger *slog.Logger) error {
	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing())
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer shutdownTracing(context.WithoutCancel(ctx))

	anim, err := cfg.Animator()
	if err != nil {
		return err
	}

	relay, err := newRelay(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.Config{
		Addr:        cfg.Addr(),
		StaticDir:   cfg.StaticDir,
		Animator:    anim,
		FrameRate:   cfg.Rate,
		Relay:       relay,
		DefaultDark: dark,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info("folio listening",
		"addr", cfg.Addr(),
		"rig", cfg.Rig,
		"preset", cfg.Preset,
		"theme", theme.NameOf(dark),
		"contact", relay != nil,
		"tracing", cfg.Tracing().Enabled(),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRelay chains every configured relay: EmailJS first, Gmail as fallback.
// It returns nil when nothing is configured.
func newRelay(ctx context.Context, cfg *config.Config, logger *slog.Logger) (contact.Relay, error) {
	var relays []contact.Relay

	if e := cfg.EmailJS; e.Configured() {
		r, err := contact.NewEmailJS(e.ServiceID, e.TemplateID, e.PublicKey, contact.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("emailjs: %w", err)
		}
		relays = append(relays, r)
	}

	if g := cfg.Gmail; g.Configured() {
		r, err := contact.NewGmail(ctx, contact.GmailCredentials{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RefreshToken: g.RefreshToken,
			Sender:       g.Sender,
			To:           g.To,
		}, contact.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("gmail: %w", err)
		}
		relays = append(relays, r)
	}

	if len(relays) == 0 {
		logger.Warn("no contact relay configured, /api/contact disabled")
		return nil, nil
	}
	return contact.NewChainWithLogger(logger, relays...)
}
