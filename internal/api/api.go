// Package api provides the HTTP surface of the assistant: the LINE webhook
// endpoint and the health-check endpoints.
//
// Webhook deliveries are acknowledged immediately; the carried events are
// processed on background goroutines and processing failures are logged,
// never surfaced to the acknowledgment.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/ymguan3-boop/line-bot-assistant/internal/flow"
	"github.com/ymguan3-boop/line-bot-assistant/internal/messaging"
	"github.com/ymguan3-boop/line-bot-assistant/internal/store"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// Server handles webhook deliveries and health checks.
type Server struct {
	gateway       messaging.Gateway
	store         store.Store
	controller    *flow.Controller
	channelSecret string
	now           func() time.Time
}

// NewServer creates a Server wired to the given collaborators.
func NewServer(gw messaging.Gateway, st store.Store, ctrl *flow.Controller, channelSecret string) *Server {
	return &Server{
		gateway:       gw,
		store:         st,
		controller:    ctrl,
		channelSecret: channelSecret,
		now:           func() time.Time { return time.Now().In(timeutil.Location) },
	}
}

// Handler returns the HTTP handler exposing /, /health, and /webhook.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.rootHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/webhook", s.webhookHandler)
	return mux
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	slog.Info("Server.Run: listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// webhookHandler verifies and parses the delivery, acknowledges it, and hands
// the events to background processing.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cb, err := webhook.ParseRequest(s.channelSecret, r)
	if err != nil {
		slog.Warn("Server.webhookHandler: parse failed", "error", err)
		if err == webhook.ErrInvalidSignature {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	// Acknowledge before processing; the platform retries otherwise.
	w.WriteHeader(http.StatusOK)

	slog.Debug("Server.webhookHandler: delivery accepted", "events", len(cb.Events))
	// The request context dies with the acknowledgment, so background
	// processing runs under its own context.
	for _, ev := range cb.Events {
		ev := ev
		go func() {
			if err := s.processEvent(context.Background(), ev); err != nil {
				slog.Error("Server.processEvent: event processing failed", "error", err)
			}
		}()
	}
}
