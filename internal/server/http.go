package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/common"
	"puzzletrack/pkg/parser"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/tracker"
)

// HTTPServer serves the ingestion and read API.
type HTTPServer struct {
	server  *http.Server
	port    int
	tracker *tracker.Tracker
	hub     *EventHub
}

// NewHTTPServer creates a new API server instance.
func NewHTTPServer(port int, t *tracker.Tracker, hub *EventHub) *HTTPServer {
	return &HTTPServer{port: port, tracker: t, hub: hub}
}

// Setup builds the router and middleware chain.
func (s *HTTPServer) Setup() error {
	r := mux.NewRouter()
	r.Use(requestLogger)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/results", s.handleIngest).Methods(http.MethodPost)
	v1.HandleFunc("/results", s.handleResults).Methods(http.MethodGet)
	v1.HandleFunc("/games", s.handleGames).Methods(http.MethodGet)
	v1.HandleFunc("/streaks", s.handleStreaks).Methods(http.MethodGet)
	v1.HandleFunc("/achievements", s.handleAchievements).Methods(http.MethodGet)
	v1.HandleFunc("/recompute", s.handleRecompute).Methods(http.MethodPost)
	v1.HandleFunc("/migrations/reparse", s.handleReparse).Methods(http.MethodPost)
	v1.HandleFunc("/events", s.hub.HandleWebsocket).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      otelhttp.NewHandler(r, "puzzletrack.http"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return nil
}

// Start begins serving API requests on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("http server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the API server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down http server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("http server stopped")
	return nil
}

type ingestRequest struct {
	Game string `json:"game"`
	Text string `json:"text"`
}

type ingestResponse struct {
	Result  result.GameResult    `json:"result"`
	Unlocks []achievement.Unlock `json:"unlocks,omitempty"`
}

// parseFailureResponse echoes the original text back so the client can offer
// retry or manual entry; the text is never discarded on failure.
type parseFailureResponse struct {
	Error string `json:"error"`
	Game  string `json:"game"`
	Hint  string `json:"hint"`
	Text  string `json:"text"`
}

func (s *HTTPServer) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Game == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "game and text are required")
		return
	}

	scope := common.NewScope(r.Context(), "tracker.ingest")
	defer scope.Finish()
	scope.TraceTag("game", req.Game)

	res, unlocks, err := s.tracker.Ingest(scope.Ctx, req.Game, req.Text)
	if err != nil {
		var perr *parser.ParseError
		switch {
		case errors.As(err, &perr):
			scope.TraceEvent("parse failed: " + perr.Kind.Error())
			writeJSON(w, http.StatusUnprocessableEntity, parseFailureResponse{
				Error: perr.Kind.Error(),
				Game:  perr.Game,
				Hint:  perr.Hint(),
				Text:  req.Text,
			})
		case errors.Is(err, tracker.ErrUnknownGame):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			scope.TraceError(err)
			scope.Log.Errorf("ingest failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to store result")
		}
		return
	}

	scope.TraceTag("resultId", res.ID)
	writeJSON(w, http.StatusCreated, ingestResponse{Result: res, Unlocks: unlocks})
}

func (s *HTTPServer) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.tracker.Results(r.Context(), r.URL.Query().Get("game"))
	if err != nil {
		logrus.Errorf("failed to load results: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *HTTPServer) handleGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Games())
}

func (s *HTTPServer) handleStreaks(w http.ResponseWriter, r *http.Request) {
	streaks, err := s.tracker.Streaks(r.Context())
	if err != nil {
		logrus.Errorf("failed to load streaks: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load streaks")
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

func (s *HTTPServer) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.tracker.Achievements(r.Context())
	if err != nil {
		logrus.Errorf("failed to load achievements: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleRecompute(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "tracker.recompute")
	defer scope.Finish()

	if err := s.tracker.RecomputeAll(scope.Ctx); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("recompute failed: %v", err)
		writeError(w, http.StatusInternalServerError, "recompute failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recomputed"})
}

func (s *HTTPServer) handleReparse(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "tracker.reparse")
	defer scope.Finish()

	migrated, failed, err := s.tracker.ReparseResults(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("reparse migration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "reparse migration failed")
		return
	}
	scope.Log.Infof("reparse migration done: migrated=%d failed=%d", migrated, failed)
	writeJSON(w, http.StatusOK, map[string]int{"migrated": migrated, "failed": failed})
}

// requestLogger opens a request scope so every log line carries the trace id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := common.NewScope(r.Context(), r.Method+" "+r.URL.Path)
		defer scope.Finish()

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(scope.Ctx))
		scope.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
