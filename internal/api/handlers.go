package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
)

// rootHandler serves the static running banner.
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("LINE Bot is running! ✅")); err != nil {
		slog.Error("Server.rootHandler: write failed", "error", err)
	}
}

// healthHandler reports static health status with a timestamp.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	resp := models.APIResponse{
		Status:    "ok",
		Message:   "Server is healthy",
		Timestamp: s.now().Format(time.RFC3339),
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

// writeJSONResponse writes a JSON response with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: marshal failed", "error", err)
		jsonData = []byte(`{"status":"error","message":"internal server error"}`)
		statusCode = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		slog.Error("Server.writeJSONResponse: write failed", "error", err)
	}
}
