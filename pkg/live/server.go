package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientdist "github.com/vango-dev/reactor/client/dist"
	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/pkg/middleware"
	"github.com/vango-dev/reactor/pkg/render"
)

// ErrTooManySessions is reported when MaxSessions is reached.
var ErrTooManySessions = errors.New("live: too many sessions")

// Server is the live host.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *middleware.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
	pending  int // reserved slots not yet added
	closed   bool
	wg       sync.WaitGroup

	// ctx is cancelled by Close and scopes every session's dispatch.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a live host with the given configuration. A nil config uses
// DefaultConfig.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	config = config.withDefaults()
	config.Logger = config.Logger.With("component", "live")

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   config,
		metrics:  middleware.NewMetrics(middleware.WithRegistry(config.Registry)),
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     config.CheckOrigin,
	}
	if s.upgrader.CheckOrigin == nil {
		s.upgrader.CheckOrigin = sameHost
	}

	r := chi.NewRouter()
	r.Get("/", s.handlePage)
	r.Get("/client.js", s.handleClient)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves on config.Addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.config.Logger.Info("listening", "addr", s.config.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close ends every session and waits for their loops to exit.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	s.cancel()
	for _, sess := range sessions {
		sess.Close()
	}
	s.wg.Wait()
}

// HandleWebSocket upgrades the request and runs a session until the
// connection ends.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.reserve(); err != nil {
		s.config.Logger.Warn("session rejected", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.release()
		s.config.Logger.Error("websocket upgrade failed", "error", err)
		s.metrics.RecordWebSocketError("upgrade")
		return
	}

	sess := newSession(conn, s.config, s.metrics)
	s.add(sess)
	s.config.Logger.Info("session opened", "session", sess.ID, "remote", r.RemoteAddr)

	if err := sess.start(); err != nil {
		sess.logger.Error("session start failed", "error", err)
		sess.Close()
	} else {
		sess.readLoop(s.ctx)
	}
	s.remove(sess)
}

// reserve claims a session slot.
func (s *Server) reserve() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("live: server closed")
	}
	if s.config.MaxSessions > 0 && len(s.sessions)+s.pending >= s.config.MaxSessions {
		return ErrTooManySessions
	}
	s.pending++
	s.wg.Add(1)
	return nil
}

func (s *Server) release() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
	s.wg.Done()
}

func (s *Server) add(sess *Session) {
	s.mu.Lock()
	s.pending--
	s.sessions[sess.ID] = sess
	closed := s.closed
	s.mu.Unlock()
	s.metrics.SessionOpened()
	if closed {
		// Close ran between reserve and add.
		sess.Close()
	}
}

func (s *Server) remove(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	s.metrics.SessionClosed()
	s.wg.Done()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, render.PageData{
		Title:       bench.Title,
		StyleSheets: s.config.StyleSheets,
	})
	if err != nil {
		s.config.Logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(clientdist.ClientJS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

// sameHost accepts requests without an Origin header and requests whose
// Origin host matches the Host header.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
