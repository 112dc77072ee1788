// Package grading runs the full draft grading pipeline for a league:
// normalize picks, project players, select starters, grade positional
// depth, project wins, synthesize letter grades and persist the batch.
package grading

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/commishtools/draftgrade/internal/domain/grade"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/normalize"
	"github.com/commishtools/draftgrade/internal/domain/projection"
	"github.com/commishtools/draftgrade/internal/domain/roster"
	"github.com/commishtools/draftgrade/internal/domain/strength"
	"github.com/commishtools/draftgrade/internal/domain/wins"
)

// GradeWriter persists one league's grade batch atomically. SaveAll returns
// false without error when the league already has grades; the check and the
// writes must share one transaction so concurrent first runs cannot both
// win.
type GradeWriter interface {
	SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error)
}

// Engine orchestrates a single-shot, synchronous grading run. It keeps no
// state between runs; the only guard is the persisted "grades exist" check.
type Engine struct {
	writer            GradeWriter
	projector         projection.Projector
	analyzer          *roster.Analyzer
	defaultLeagueSize int
	now               func() time.Time
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithProjector sets the player projector.
func WithProjector(p projection.Projector) Option {
	return func(e *Engine) {
		if p != nil {
			e.projector = p
		}
	}
}

// WithRosterAnalyzer sets the starting-lineup analyzer.
func WithRosterAnalyzer(a *roster.Analyzer) Option {
	return func(e *Engine) {
		if a != nil {
			e.analyzer = a
		}
	}
}

// WithDefaultLeagueSize sets the team count assumed when a submission does
// not carry one.
func WithDefaultLeagueSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.defaultLeagueSize = size
		}
	}
}

// WithClock overrides the timestamp source for persisted grades.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine with default configuration.
func New(writer GradeWriter, opts ...Option) *Engine {
	e := &Engine{
		writer:            writer,
		projector:         projection.NewMockProjector(),
		analyzer:          roster.NewAnalyzer(),
		defaultLeagueSize: normalize.DefaultLeagueSize,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateAllGrades grades every mapped team in the submission and
// persists one grade per member in a single batch. It returns false when
// the league was already graded and the run was a no-op. Picks whose
// external user has no member mapping are silently dropped; a team with no
// mapped picks does not appear in the output at all.
func (e *Engine) CalculateAllGrades(ctx context.Context, sub model.DraftSubmission, resolve normalize.Resolver) (bool, error) {
	leagueSize := sub.LeagueSize
	if leagueSize <= 0 {
		leagueSize = e.defaultLeagueSize
	}

	// Normalize and project, grouping by owning member in first-pick order.
	byUser := make(map[string][]model.NormalizedPick)
	var order []string
	for _, raw := range sub.Picks {
		pick, ok := normalize.Pick(raw, leagueSize, resolve)
		if !ok {
			continue
		}
		res, err := e.projector.Project(ctx, pick.Round, pick.PickInRound, pick.Overall)
		if err != nil {
			return false, fmt.Errorf("project pick %d: %w", pick.Overall, err)
		}
		pick.Position = res.Position
		pick.ProjectedPoints = res.Points
		pick.ReplacementValue = res.Points - projection.ReplacementLevel(res.Position)

		if _, seen := byUser[pick.User]; !seen {
			order = append(order, pick.User)
		}
		byUser[pick.User] = append(byUser[pick.User], pick)
	}
	if len(order) == 0 {
		return false, nil
	}

	// Per-team projections.
	starterPoints := make(map[string]float64, len(order))
	projections := make([]model.TeamProjection, 0, len(order))
	for _, user := range order {
		picks := byUser[user]
		points := e.analyzer.StarterPoints(picks)
		starterPoints[user] = points
		projections = append(projections, model.TeamProjection{
			User:          user,
			StarterPoints: points,
			Balance:       strength.Analyze(picks),
			Picks:         picks,
		})
	}

	// Rank by descending starter points; stable sort keeps insertion order
	// for ties.
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].StarterPoints > projections[j].StarterPoints
	})
	now := e.now()
	grades := make([]model.DraftGrade, 0, len(projections))
	for i := range projections {
		tp := &projections[i]
		tp.Rank = i + 1
		tp.ProjectedWins = wins.Project(tp.User, starterPoints)
		tp.PlayoffProbability = grade.PlayoffProbability(tp.Rank)
		grades = append(grades, grade.Synthesize(sub.LeagueID, *tp, now))
	}

	saved, err := e.writer.SaveAll(ctx, sub.LeagueID, grades)
	if err != nil {
		return false, fmt.Errorf("persist grades for league %s: %w", sub.LeagueID, err)
	}
	return saved, nil
}
