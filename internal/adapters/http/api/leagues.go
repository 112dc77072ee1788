// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// LeaguesHandler handles grade and membership requests scoped to a league.
type LeaguesHandler struct {
	deps Dependencies
}

// NewLeaguesHandler creates a new leagues handler.
func NewLeaguesHandler(deps Dependencies) *LeaguesHandler {
	return &LeaguesHandler{deps: deps}
}

// membersRequest mirrors the OpenAPI schema for PUT /leagues/{id}/members.
// Keys are external platform user ids, values are league member handles.
type membersRequest struct {
	Members map[string]string `json:"members"`
}

// HandleLeagues dispatches requests under /leagues/:
//
//	GET    /leagues/{id}/grades        -> all grades, ranked
//	DELETE /leagues/{id}/grades        -> clear grades
//	GET    /leagues/{id}/grades/{user} -> one member's grade
//	PUT    /leagues/{id}/members       -> register member mappings
func (h *LeaguesHandler) HandleLeagues(w http.ResponseWriter, r *http.Request) {
	const op = "api.leagues"

	rest := strings.TrimPrefix(r.URL.Path, "/leagues/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	leagueID := parts[0]

	switch {
	case len(parts) == 2 && parts[1] == "grades":
		switch r.Method {
		case http.MethodGet:
			h.handleGetGrades(w, r, leagueID)
		case http.MethodDelete:
			h.handleClearGrades(w, r, leagueID)
		default:
			http.NotFound(w, r)
		}
	case len(parts) == 3 && parts[1] == "grades" && parts[2] != "":
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		h.handleGetGrade(w, r, leagueID, parts[2])
	case len(parts) == 2 && parts[1] == "members":
		if r.Method != http.MethodPut {
			http.NotFound(w, r)
			return
		}
		h.handlePutMembers(w, r, leagueID)
	default:
		http.NotFound(w, r)
	}
}

func (h *LeaguesHandler) handleGetGrades(w http.ResponseWriter, r *http.Request, leagueID string) {
	const op = "api.get_grades"
	records, err := h.deps.LeagueGrades(r.Context(), leagueID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *LeaguesHandler) handleGetGrade(w http.ResponseWriter, r *http.Request, leagueID, userID string) {
	const op = "api.get_grade"
	record, err := h.deps.UserGrade(r.Context(), leagueID, userID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *LeaguesHandler) handleClearGrades(w http.ResponseWriter, r *http.Request, leagueID string) {
	const op = "api.clear_grades"
	if err := h.deps.ClearGrades(r.Context(), leagueID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared", "league_id": leagueID})
}

func (h *LeaguesHandler) handlePutMembers(w http.ResponseWriter, r *http.Request, leagueID string) {
	const op = "api.put_members"
	var req membersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Members) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing members")))
		return
	}
	for ext, member := range req.Members {
		if strings.TrimSpace(ext) == "" || strings.TrimSpace(member) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("empty member mapping")))
			return
		}
	}
	if err := h.deps.PutMembers(r.Context(), leagueID, req.Members); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "league_id": leagueID, "count": len(req.Members)})
}
