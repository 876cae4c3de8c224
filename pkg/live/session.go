package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/middleware"
	"github.com/vango-dev/reactor/pkg/protocol"
)

// Session is one connected browser with its own app instance.
type Session struct {
	ID string

	conn    *websocket.Conn
	rec     *Recorder
	app     *bench.Instance
	handler middleware.Handler
	config  *Config
	metrics *middleware.Metrics
	logger  *slog.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newSession(conn *websocket.Conn, config *Config, metrics *middleware.Metrics) *Session {
	id := uuid.NewString()
	logger := config.Logger.With("session", id)
	rec := NewRecorder()

	s := &Session{
		ID:      id,
		conn:    conn,
		rec:     rec,
		config:  config,
		metrics: metrics,
		logger:  logger,
		done:    make(chan struct{}),
	}
	s.app = bench.NewInstance(rec, rec.Root(), bench.Options{
		Seed:     config.Seed,
		MaxDepth: config.MaxDepth,
		Logger:   logger,
		Observer: metrics.ObserveList,
	})

	otelOpts := []middleware.OTelOption{}
	if config.TracerProvider != nil {
		otelOpts = append(otelOpts, middleware.WithTracerProvider(config.TracerProvider))
	}
	s.handler = middleware.Chain(s.apply,
		middleware.Recover(logger),
		middleware.OpenTelemetry(otelOpts...),
		metrics.Middleware(),
		middleware.Logger(logger),
	)
	return s
}

// Memory returns the server-side mirror of the client's tree.
func (s *Session) Memory() *dom.MemoryDocument {
	return s.rec.Memory()
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// start sends the greeting and the initial tree.
func (s *Session) start() error {
	hello := protocol.NewFrame(protocol.FrameHello, protocol.EncodeHello(&protocol.Hello{
		Session: s.ID,
		Root:    s.rec.Root().NodeID(),
	}))
	if err := s.write(hello); err != nil {
		return err
	}

	var ops []protocol.Op
	s.app.Runtime.Do(func() {
		ops = s.rec.Flush()
	})
	return s.sendOps(ops, protocol.FlagInitial)
}

// readLoop handles client frames until the connection fails or a fatal
// error is reported.
func (s *Session) readLoop(ctx context.Context) {
	defer s.Close()
	s.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.metrics.RecordWebSocketError("read")
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(protocol.NewError(protocol.ErrInvalidFrame, err.Error()))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			if fatal := s.handleEvent(ctx, frame.Payload); fatal {
				return
			}
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// handleEvent dispatches one event frame. It reports whether the session
// must end.
func (s *Session) handleEvent(ctx context.Context, payload []byte) bool {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.sendError(protocol.NewError(protocol.ErrInvalidEvent, err.Error()))
		return false
	}

	d := &middleware.Dispatch{
		Kind:    middleware.KindEvent,
		Name:    ev.Type,
		Session: s.ID,
		Target:  ev.Target,
	}
	err = s.handler(ctx, d)

	var pe *middleware.PanicError
	switch {
	case err == nil:
		return false
	case errors.Is(err, dom.ErrUnknownNode):
		s.sendError(protocol.NewError(protocol.ErrUnknownTarget, err.Error()))
		return false
	case errors.As(err, &pe):
		s.sendError(protocol.NewFatalError(protocol.ErrHandlerPanic, fmt.Sprint(pe.Value)))
		return true
	default:
		// Errors raised as panics by the reactive core leave the graph in
		// an unknown state.
		s.sendError(protocol.NewFatalError(protocol.ErrServerError, err.Error()))
		return true
	}
}

// apply delivers the event inside the runtime and sends the resulting ops.
func (s *Session) apply(ctx context.Context, d *middleware.Dispatch) error {
	var (
		ops []protocol.Op
		err error
	)
	s.app.Runtime.Do(func() {
		defer func() { ops = s.rec.Flush() }()
		err = s.rec.Memory().Dispatch(d.Target, d.Name)
	})
	d.Ops = len(ops)
	if len(ops) > 0 {
		if werr := s.sendOps(ops, 0); werr != nil {
			return werr
		}
	}
	return err
}

func (s *Session) sendOps(ops []protocol.Op, flags protocol.FrameFlags) error {
	frame := &protocol.Frame{
		Type:    protocol.FrameOps,
		Flags:   flags,
		Payload: protocol.EncodeOps(ops),
	}
	if err := s.write(frame); err != nil {
		return err
	}
	s.metrics.RecordOps(len(ops))
	return nil
}

func (s *Session) sendError(em *protocol.ErrorMessage) {
	s.logger.Warn("sending error", "code", em.Code, "message", em.Message, "fatal", em.Fatal)
	_ = s.write(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(em)))
}

func (s *Session) write(f *protocol.Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
		s.metrics.RecordWebSocketError("write")
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// Close disposes the app and closes the connection. It is idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		s.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		_ = s.conn.Close()

		s.app.Runtime.Do(s.app.Close)
		close(s.done)
		s.logger.Info("session closed")
	})
}
