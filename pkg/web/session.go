package web

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/teslashibe/go-folio/pkg/hub"
	"github.com/teslashibe/go-folio/pkg/protocol"
	"github.com/teslashibe/go-folio/pkg/scene"
	"github.com/teslashibe/go-folio/pkg/scroll"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// session is one browser connection's scene. Nothing is shared between
// sessions and nothing outlives the socket.
type session struct {
	client  *hub.Client
	logger  *slog.Logger
	host    *scene.Host
	tracker *scroll.Tracker
	dark    atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

// openSession starts a scene host streaming frames to the new client.
func (s *Server) openSession(c *hub.Client) {
	sink := scene.SinkFunc(func(snap scene.Snapshot) error {
		msg, err := protocol.NewFrameMessage(snap)
		if err != nil {
			return err
		}
		out, err := hub.Encode(msg)
		if err != nil {
			return err
		}
		// A full queue drops the frame; the next one supersedes it.
		c.Send(out)
		return nil
	})

	host, err := scene.NewHost(s.anim, sink,
		scene.WithRate(s.cfg.FrameRate),
		scene.WithLogger(s.cfg.Logger.With("session", c.ID)),
	)
	if err != nil {
		s.logger.Error("session setup failed", "session", c.ID, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	sess := &session{
		client:  c,
		logger:  s.logger.With("session", c.ID),
		host:    host,
		tracker: scroll.NewTracker(s.anim.Config().Bands),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	dark, ok := theme.Parse(c.Cookie(theme.CookieName))
	if !ok {
		dark = s.themes.Dark()
	}
	sess.dark.Store(dark)

	s.sessionsMu.Lock()
	s.sessions[c.ID] = sess
	count := len(s.sessions)
	s.sessionsMu.Unlock()

	sess.send(protocol.NewThemeMessage(dark))
	sess.send(protocol.NewSectionMessage(sess.tracker.Section()))

	go func() {
		defer close(sess.done)
		host.Run(ctx)
	}()

	s.AddLog(LogSession, fmt.Sprintf("session %s opened (%d live)", short(c.ID), count))
}

// closeSession stops the client's scene host and forgets it.
func (s *Server) closeSession(c *hub.Client) {
	s.sessionsMu.Lock()
	sess, ok := s.sessions[c.ID]
	delete(s.sessions, c.ID)
	count := len(s.sessions)
	s.sessionsMu.Unlock()
	if !ok {
		return
	}

	sess.cancel()
	<-sess.done

	st := sess.host.Stats()
	s.logger.Debug("session closed", "session", c.ID, "ticks", st.Ticks, "published", st.Published, "dropped", c.Dropped())
	s.AddLog(LogSession, fmt.Sprintf("session %s closed (%d live)", short(c.ID), count))
}

// handleSceneMessage applies browser input to the client's session.
func (s *Server) handleSceneMessage(c *hub.Client, m *protocol.Message) {
	s.sessionsMu.Lock()
	sess := s.sessions[c.ID]
	s.sessionsMu.Unlock()
	if sess == nil {
		return
	}

	switch m.Type {
	case protocol.TypeInput:
		in, err := m.GetInputData()
		if err != nil {
			sess.send(protocol.NewErrorMessage("invalid input: " + err.Error()))
			return
		}
		sess.apply(in)

	case protocol.TypeTheme:
		td, err := m.GetThemeData()
		if err != nil {
			sess.send(protocol.NewErrorMessage("invalid theme: " + err.Error()))
			return
		}
		sess.dark.Store(td.Dark)
		sess.send(protocol.NewThemeMessage(td.Dark))

	default:
		sess.send(protocol.NewErrorMessage(fmt.Sprintf("unsupported message type %q", m.Type)))
	}
}

// apply feeds browser input to the scene host. Raw metrics win over a
// normalized scroll value; a section change is announced to the client.
func (sess *session) apply(in *protocol.InputData) {
	var (
		progress float64
		section  = sess.tracker.Section()
		changed  bool
		scrolled = true
	)
	switch {
	case in.Metrics != nil:
		progress, section, changed = sess.tracker.Update(in.Metrics.Top, in.Metrics.Height, in.Metrics.ClientHeight)
	case in.Scroll != nil:
		progress, section, changed = sess.tracker.Set(*in.Scroll)
	default:
		scrolled = false
	}
	if scrolled {
		sess.host.SetScroll(progress)
	}
	if changed {
		sess.send(protocol.NewSectionMessage(section))
	}
	if in.Pointer != nil {
		sess.host.SetPointer(in.Pointer.X, in.Pointer.Y)
	}
}

// send queues a message built by a protocol constructor.
func (sess *session) send(m *protocol.Message, err error) {
	if err == nil {
		var out hub.Message
		if out, err = hub.Encode(m); err == nil {
			sess.client.Send(out)
			return
		}
	}
	sess.logger.Warn("message encode failed", "error", err)
}

// SessionCount returns the number of live scene sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
