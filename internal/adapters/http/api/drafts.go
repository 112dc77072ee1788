// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// DraftsHandler handles draft submission requests.
type DraftsHandler struct {
	deps Dependencies
}

// NewDraftsHandler creates a new drafts handler.
func NewDraftsHandler(deps Dependencies) *DraftsHandler {
	return &DraftsHandler{deps: deps}
}

// draftRequest mirrors the OpenAPI schema for POST /drafts.
type draftRequest struct {
	SubmissionID string        `json:"submission_id"`
	LeagueID     string        `json:"league_id"`
	LeagueSize   int           `json:"league_size"`
	Picks        []pickRequest `json:"picks"`
}

type pickRequest struct {
	Round       int               `json:"round"`
	PickInRound int               `json:"pick_in_round"`
	PlayerID    string            `json:"player_id"`
	PickedBy    string            `json:"picked_by"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	ADP         *float64          `json:"adp,omitempty"`
}

func (d draftRequest) validate() error {
	switch {
	case strings.TrimSpace(d.LeagueID) == "":
		return errors.New("missing league_id")
	case len(d.Picks) == 0:
		return errors.New("missing picks")
	case d.LeagueSize < 0:
		return errors.New("invalid league_size")
	}
	for i, p := range d.Picks {
		switch {
		case p.Round < 1:
			return fmt.Errorf("pick %d: round must be >= 1", i)
		case p.PickInRound < 1:
			return fmt.Errorf("pick %d: pick_in_round must be >= 1", i)
		case strings.TrimSpace(p.PlayerID) == "":
			return fmt.Errorf("pick %d: missing player_id", i)
		case strings.TrimSpace(p.PickedBy) == "":
			return fmt.Errorf("pick %d: missing picked_by", i)
		}
	}
	return nil
}

func (d draftRequest) toSubmission() model.DraftSubmission {
	picks := make([]model.RawPick, len(d.Picks))
	for i, p := range d.Picks {
		raw := model.RawPick{
			Round:          p.Round,
			PickInRound:    p.PickInRound,
			ExternalPlayer: p.PlayerID,
			ExternalUser:   p.PickedBy,
			Metadata:       p.Metadata,
		}
		if p.ADP != nil {
			raw.ADP = *p.ADP
			raw.HasADP = true
		}
		picks[i] = raw
	}
	return model.DraftSubmission{
		SubmissionID: d.SubmissionID,
		LeagueID:     d.LeagueID,
		LeagueSize:   d.LeagueSize,
		Picks:        picks,
	}
}

// HandlePostDraft handles POST /drafts requests.
func (h *DraftsHandler) HandlePostDraft(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_draft"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.SubmissionID == "" {
		req.SubmissionID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.SubmissionID) {
		writeJSON(w, http.StatusOK, ackResponse{
			Status:       "duplicate",
			Duplicate:    true,
			SubmissionID: req.SubmissionID,
		})
		return
	}

	// Try to enqueue for async grading
	if ok := h.deps.Enqueue(r.Context(), req.toSubmission()); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.SubmissionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:       "accepted",
		Duplicate:    false,
		SubmissionID: req.SubmissionID,
	})
}
