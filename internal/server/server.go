// Package server hosts matches over WebSocket. Every client that connects
// gets its own engine and NPC opponent; the client renders events and drives
// pacing with resume messages.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/pokersim/headsup/internal/config"
	"github.com/pokersim/headsup/internal/randutil"
)

// Server accepts WebSocket connections and runs one match per client.
type Server struct {
	addr     string
	cfg      *config.Config
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[*session]struct{}
	seeds    func() int64
}

func New(addr string, cfg *config.Config, logger *log.Logger) *Server {
	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seedRNG := randutil.New(seed)
	return &Server{
		addr: addr,
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("server"),
		sessions: make(map[*session]struct{}),
		seeds:    seedRNG.Int64,
	}
}

// ListenAndServe serves until the context is cancelled, then drains open
// sessions and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWebSocket(ctx, w, r)
	})
	mux.HandleFunc("/health", s.handleHealth)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	sess, err := newSession(conn, s.cfg, s.seed(), s.logger)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		_ = conn.Close()
		return
	}

	s.track(sess)
	defer s.untrack(sess)

	if err := sess.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("session ended", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeds()
}

func (s *Server) track(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess] = struct{}{}
	s.logger.Info("client connected", "sessions", len(s.sessions))
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess)
	s.logger.Info("client disconnected", "sessions", len(s.sessions))
}
