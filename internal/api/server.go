// Package api exposes the business-case engine and the scenario store over
// HTTP: JSON endpoints for evaluation and scenario management, plus HTML
// chart endpoints for the analyst's browser.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mineralytics/acidcase/internal/db"
	"github.com/mineralytics/acidcase/internal/monitoring"
)

// ANSI escape codes for request logging.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server routes API requests to the engine and the scenario store. A nil
// store disables the scenario and run endpoints; evaluation and the default
// charts still work.
type Server struct {
	store *db.DB
}

func NewServer(store *db.DB) *Server {
	return &Server{store: store}
}

// ServeMux registers all routes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/defaults", s.handleDefaults)
	mux.HandleFunc("/api/scenarios", s.handleScenarios)
	mux.HandleFunc("/api/scenarios/", s.handleScenarioByID)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/charts/waterfall", s.handleWaterfall)
	mux.HandleFunc("/charts/breakdown", s.handleBreakdown)
	mux.HandleFunc("/charts", s.handleDashboard)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		monitoring.Logf("failed to encode json response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
