// Package web serves Battle Cursor to browsers: an embedded canvas page,
// a WebSocket per player that streams msgpack snapshots of a server-side
// match, and the high score table as JSON.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
)

//go:embed static/index.html
var indexPage []byte

// Options configures a Server.
type Options struct {
	Presets config.Presets
	Store   highscore.Store
	Logger  *log.Logger
	Clock   game.Clock
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	opts     Options
	logger   *log.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
	sessions sync.WaitGroup
}

// NewServer creates a server. Zero options fall back to the defaults.
func NewServer(opts Options) *Server {
	if opts.Presets == nil {
		opts.Presets = config.DefaultPresets()
	}
	if opts.Store == nil {
		opts.Store = &highscore.MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/scores", s.handleScores).Methods(http.MethodGet)
	r.HandleFunc("/difficulties", s.handleDifficulties).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down and
// waits for open sessions to end.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Sessions derive from this context so they end on shutdown;
		// hijacked connections are not tracked by Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Stopping web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}
	s.sessions.Wait()
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	entries, err := s.opts.Store.Load()
	if err != nil {
		s.logger.Error("Failed to load high scores", "err", err)
		http.Error(w, "high scores unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	type preset struct {
		Name   string `json:"name"`
		Health int    `json:"health"`
	}
	names := s.opts.Presets.Names()
	out := make([]preset, 0, len(names))
	for _, name := range names {
		out = append(out, preset{Name: name, Health: s.opts.Presets[name].PlayerHealth})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "err", err)
	}
}

// handleWebSocket upgrades the connection and plays one session on it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("difficulty")
	if name == "" {
		name = config.DefaultDifficulty
	}
	preset, err := s.opts.Presets.Lookup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Done()

	id := uuid.NewString()
	sess := newSession(id, conn, preset, s.opts.Clock, s.opts.Store, s.logger)
	sess.logger.Info("Session opened", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	for _, loop := range []func(context.Context){sess.readLoop, sess.writeLoop, sess.tickLoop} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			loop(ctx)
		}()
	}
	wg.Wait()
	sess.logger.Info("Session closed")
}
