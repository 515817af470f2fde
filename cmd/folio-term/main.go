// Folio-term animates the portfolio character in a terminal. The mouse
// steers its gaze and the wheel scrolls through the sections.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-folio/internal/config"
	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/pkg/scene"
	"github.com/teslashibe/go-folio/pkg/scroll"
	"github.com/teslashibe/go-folio/pkg/termview"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// wheelStep is the scroll progress moved by one wheel notch.
const wheelStep = 0.02

type options struct {
	cfg     *config.Config
	light   bool
	logFile string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(2)
	}

	// Log lines would tear the screen, so they go to a file or nowhere.
	var out io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log.InitWriter(opts.cfg.LogLevel, out)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	cfg, err := config.Load()
	if err != nil {
		return options{}, err
	}

	rigName := flag.String("rig", cfg.Rig, "Character rig: simple, articulated")
	preset := flag.String("preset", cfg.Preset, "Animation preset: default, calm, lively")
	rate := flag.Duration("rate", cfg.Rate, "Frame interval")
	light := flag.Bool("light", false, "Start with the light theme")
	logFile := flag.String("log", "", "Write logs to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg.Rig, cfg.Preset, cfg.Rate = *rigName, *preset, *rate
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	return options{cfg: cfg, light: *light, logFile: *logFile}, nil
}

func run(ctx context.Context, opts options) error {
	logger := log.With("component", "folio-term")

	anim, err := opts.cfg.Animator()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	themes := theme.NewStore()
	themes.Set(!opts.light)

	host, err := scene.NewHost(anim, termview.NewSink(screen, themes),
		scene.WithRate(opts.cfg.Rate),
		scene.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	tracker := scroll.NewTracker(anim.Config().Bands)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go pollEvents(screen, host, tracker, themes, cancel)

	host.Run(ctx)
	return nil
}

// pollEvents turns terminal input into scene input until the user quits or
// the screen is finalized.
func pollEvents(s tcell.Screen, host *scene.Host, tracker *scroll.Tracker, themes *theme.Store, quit context.CancelFunc) {
	logger := log.With("component", "folio-term")
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.Sync()

		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				quit()
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
				dark := themes.Toggle()
				logger.Debug("theme toggled", "theme", theme.NameOf(dark))
			case ev.Key() == tcell.KeyDown, ev.Key() == tcell.KeyPgDn:
				scrollBy(host, tracker, wheelStep*5)
			case ev.Key() == tcell.KeyUp, ev.Key() == tcell.KeyPgUp:
				scrollBy(host, tracker, -wheelStep*5)
			}

		case *tcell.EventMouse:
			w, h := s.Size()
			x, y := ev.Position()
			host.SetPointer(normalize(x, w), -normalize(y, h-1))

			switch btn := ev.Buttons(); {
			case btn&tcell.WheelDown != 0:
				scrollBy(host, tracker, wheelStep)
			case btn&tcell.WheelUp != 0:
				scrollBy(host, tracker, -wheelStep)
			}
		}
	}
}

func scrollBy(host *scene.Host, tracker *scroll.Tracker, delta float64) {
	progress, section, changed := tracker.Nudge(delta)
	host.SetScroll(progress)
	if changed {
		log.Debug("section changed", "section", section)
	}
}

// normalize maps a cell index in [0, n) to [-1, 1].
func normalize(v, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(v)/float64(n-1)*2 - 1
}
