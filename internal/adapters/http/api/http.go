// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/commishtools/draftgrade/internal/adapters/repository"
	"github.com/commishtools/draftgrade/internal/domain/dedupe"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a draft submission for async grading. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, sub model.DraftSubmission) bool

	// Read operations expose persisted grades.
	LeagueGrades(ctx context.Context, leagueID string) ([]GradeRecord, error)
	UserGrade(ctx context.Context, leagueID, userID string) (GradeRecord, error)

	// ClearGrades removes a league's grades so it can be regraded.
	ClearGrades(ctx context.Context, leagueID string) error

	// PutMembers registers external-id to member mappings for a league.
	PutMembers(ctx context.Context, leagueID string, members map[string]string) error
}

// GradeRecord mirrors the read shape returned by grade queries.
type GradeRecord = types.GradeRecord

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	draftsHandler  *DraftsHandler
	leaguesHandler *LeaguesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		draftsHandler:  NewDraftsHandler(deps),
		leaguesHandler: NewLeaguesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/drafts", MetricsMiddleware(s.draftsHandler.HandlePostDraft, "drafts"))
	mux.HandleFunc("/leagues/", MetricsMiddleware(s.leaguesHandler.HandleLeagues, "leagues"))
}

type ackResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	SubmissionID string `json:"submission_id"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
