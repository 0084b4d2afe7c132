// Package web serves gemfall to browsers: a small JSON API to create games
// and a websocket per game that takes commands and pushes snapshots.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/vovakirdan/gemfall/internal/games/match3"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
	"github.com/vovakirdan/gemfall/internal/storage"
)

// GameID is the id web runs are stored under.
const GameID = "gemfall_web"

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickInterval is how often open websockets advance the level clock.
	TickInterval time.Duration

	// Setup is the game configuration shared by all games.
	Setup match3.Setup

	// IdleTimeout is how long a game may go unused before it is dropped.
	IdleTimeout time.Duration

	// MaxGames caps the number of live games. New games are refused with
	// 503 while the cap is reached.
	MaxGames int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		TickInterval: 100 * time.Millisecond,
		Setup:        match3.DefaultSetup(nil),
		IdleTimeout:  30 * time.Minute,
		MaxGames:     1000,
	}
}

// Server hosts browser games.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu    sync.Mutex
	games map[string]*game

	server *http.Server
	done   chan struct{}
	once   sync.Once
}

// NewServer creates a web server. store may be nil, in which case nothing
// is persisted. The caller owns store.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defaults := DefaultConfig()
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaults.TickInterval
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}
	if cfg.MaxGames <= 0 {
		cfg.MaxGames = defaults.MaxGames
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		now:   time.Now,
		games: make(map[string]*game),
		done:  make(chan struct{}),
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleNewGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	mux.HandleFunc("GET /api/games/{id}/ws", s.handleConnectWs)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	return corsMiddleware()(mux)
}

func corsMiddleware() func(http.Handler) http.Handler {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	go s.janitor()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	return s.Shutdown()
}

// Shutdown closes open websockets and stops the server.
func (s *Server) Shutdown() error {
	s.once.Do(func() { close(s.done) })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// janitor drops idle games until the server shuts down.
func (s *Server) janitor() {
	ticker := time.NewTicker(s.config.IdleTimeout / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle(s.now())
		case <-s.done:
			return
		}
	}
}

// evictIdle drops games unused since before now minus the idle timeout and
// returns how many were dropped.
func (s *Server) evictIdle(now time.Time) int {
	cutoff := now.Add(-s.config.IdleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, g := range s.games {
		if g.idleSince().Before(cutoff) {
			delete(s.games, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Info("dropped idle games", "count", n, "live", len(s.games))
	}
	return n
}

func (s *Server) lookup(id string) (*game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

// saveRun persists a finished level.
func (s *Server) saveRun(g *game, sum session.Summary) {
	s.logger.Info("level finished", "game", g.id, "level", sum.Level, "score", sum.Score, "passed", sum.Passed)
	if s.store == nil {
		return
	}
	_, err := s.store.SaveRun(storage.Run{
		GameID:    GameID,
		Level:     sum.Level,
		Score:     sum.Score,
		Stars:     sum.Stars,
		Passed:    sum.Passed,
		Chests:    sum.Chests,
		MovesUsed: sum.MovesUsed,
		Seed:      g.seed,
	})
	if err != nil {
		s.logger.Warn("could not save run", "game", g.id, "err", err)
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	params, err := decodeNewGameParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if params.Seed == 0 {
		params.Seed = s.now().UnixNano()
	}

	id := uuid.NewString()
	g := newGame(id, params.Seed, s.config.Setup.NewController(params.Seed), params.Level, s.now())
	g.onFinish = s.saveRun

	s.mu.Lock()
	full := len(s.games) >= s.config.MaxGames
	if !full {
		s.games[id] = g
	}
	s.mu.Unlock()
	if full {
		s.logger.Warn("game refused, server full", "max", s.config.MaxGames)
		writeError(w, http.StatusServiceUnavailable, "too many games")
		return
	}

	s.logger.Info("game created", "game", id, "level", params.Level, "seed", params.Seed)
	writeJSON(w, http.StatusCreated, g.reply())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	g.touch(s.now())
	writeJSON(w, http.StatusOK, g.reply())
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	params, err := decodeRunsParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, []storage.Run{})
		return
	}
	runs, err := s.store.RecentRuns(params.Game, params.Limit)
	if err != nil {
		s.logger.Error("cannot list runs", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot list runs")
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleConnectWs upgrades to a websocket. Reads happen on their own
// goroutine; all writes happen here.
func (s *Server) handleConnectWs(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "game", g.id, "err", err)
		return
	}
	defer conn.Close()

	s.logger.Info("websocket opened", "game", g.id, "remote", r.RemoteAddr)
	defer s.logger.Info("websocket closed", "game", g.id)

	stop := make(chan struct{})
	defer close(stop)
	cmds := make(chan Command)
	readErr := make(chan error, 1)
	go func() {
		for {
			var cmd Command
			if err := conn.ReadJSON(&cmd); err != nil {
				readErr <- err
				return
			}
			select {
			case cmds <- cmd:
			case <-stop:
				return
			}
		}
	}()

	if err := conn.WriteJSON(g.reply()); err != nil {
		return
	}

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-cmds:
			if err := conn.WriteJSON(g.apply(cmd, s.now())); err != nil {
				s.logger.Warn("write failed", "game", g.id, "err", err)
				return
			}
		case <-ticker.C:
			if !g.advance(s.now()) {
				continue
			}
			if err := conn.WriteJSON(g.reply()); err != nil {
				s.logger.Warn("write failed", "game", g.id, "err", err)
				return
			}
		case err := <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "game", g.id, "err", err)
			}
			return
		case <-s.done:
			//nolint:errcheck // Best-effort close frame
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client is gone if this fails
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
