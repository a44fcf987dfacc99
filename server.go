package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// BotInfo is a snapshot of the bot's identity for the status endpoints.
// Before the gateway is ready, Ready is false and the identity fields are
// empty.
type BotInfo struct {
	Ready    bool
	Name     string
	ID       string
	Guilds   int
	Uptime   time.Duration
	LoggedIn bool
}

// StatusServer serves the keep-alive HTTP surface used by hosting
// platforms to probe whether the bot process is up.
type StatusServer struct {
	log  zerolog.Logger
	info func() BotInfo
}

func NewStatusServer(log zerolog.Logger, info func() BotInfo) *StatusServer {
	return &StatusServer{log: log, info: info}
}

// Router builds the chi handler for the status endpoints.
func (s *StatusServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/ping", s.handlePing)
	r.Get("/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// ListenAndServe blocks serving the status surface on the given port.
func (s *StatusServer) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("status server listening")
	return http.ListenAndServe(addr, s.Router())
}

func (s *StatusServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := s.info()
	botStatus := "offline"
	if info.Ready {
		botStatus = "online"
	}
	s.writeJSON(w, map[string]any{
		"status":     "online",
		"uptime":     info.Uptime.Round(time.Second).String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"bot_status": botStatus,
		"guilds":     info.Guilds,
	})
}

func (s *StatusServer) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	info := s.info()
	s.writeJSON(w, map[string]any{
		"bot_name":       info.Name,
		"bot_id":         info.ID,
		"guilds_count":   info.Guilds,
		"uptime_seconds": int64(info.Uptime.Seconds()),
		"go_version":     runtime.Version(),
	})
}

func (s *StatusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *StatusServer) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("write status response")
	}
}
