package grading_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/commishtools/draftgrade/internal/domain/grading"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/projection"
	"github.com/smartystreets/goconvey/convey"
)

// fakeWriter records batches and simulates the one-shot guard.
type fakeWriter struct {
	mu      sync.Mutex
	batches map[string][]model.DraftGrade
	err     error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{batches: make(map[string][]model.DraftGrade)}
}

func (w *fakeWriter) SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return false, w.err
	}
	if _, ok := w.batches[leagueID]; ok {
		return false, nil
	}
	w.batches[leagueID] = grades
	return true, nil
}

// slotProjector assigns deterministic points so ranks are predictable:
// each team's picks all project to the same per-team total ordering.
type slotProjector struct{}

func (slotProjector) Project(ctx context.Context, round, pickInRound, overall int) (projection.Result, error) {
	// Round one settles every lineup slot; points fall with the draft slot
	// so team 1 outscores team 2 and so on.
	return projection.Result{
		Position: model.RB,
		Points:   float64(1000 - 10*pickInRound),
	}, nil
}

// failingProjector always errors.
type failingProjector struct{}

func (failingProjector) Project(ctx context.Context, round, pickInRound, overall int) (projection.Result, error) {
	return projection.Result{}, errors.New("projection feed down")
}

// buildSubmission creates one pick per team so each team has exactly one
// starter.
func buildSubmission(leagueID string, teams int) model.DraftSubmission {
	picks := make([]model.RawPick, 0, teams)
	for slot := 1; slot <= teams; slot++ {
		picks = append(picks, model.RawPick{
			Round:          1,
			PickInRound:    slot,
			ExternalPlayer: "player_" + strconv.Itoa(slot),
			ExternalUser:   "ext_" + strconv.Itoa(slot),
		})
	}
	return model.DraftSubmission{
		SubmissionID: "sub_1",
		LeagueID:     leagueID,
		LeagueSize:   teams,
		Picks:        picks,
	}
}

func resolveAll(ext string) (string, bool) {
	return "user_" + ext[len("ext_"):], true
}

func TestCalculateAllGrades(t *testing.T) {
	convey.Convey("Given a grading engine over a fake store", t, func() {
		ctx := context.Background()
		writer := newFakeWriter()
		engine := grading.New(writer, grading.WithProjector(slotProjector{}))

		convey.Convey("When grading a full 12-team draft", func() {
			sub := buildSubmission("league_1", 12)

			graded, err := engine.CalculateAllGrades(ctx, sub, resolveAll)

			convey.Convey("Then one grade per team is persisted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(graded, convey.ShouldBeTrue)
				convey.So(len(writer.batches["league_1"]), convey.ShouldEqual, 12)
			})

			convey.Convey("Then ranks form a permutation ordered by points", func() {
				grades := writer.batches["league_1"]
				seen := make(map[int]bool)
				for _, g := range grades {
					seen[g.ProjectedRank] = true
				}
				convey.So(len(seen), convey.ShouldEqual, 12)

				// Team 1 drafted first and projects highest.
				convey.So(grades[0].UserID, convey.ShouldEqual, "user_1")
				convey.So(grades[0].ProjectedRank, convey.ShouldEqual, 1)
				convey.So(grades[0].Grade, convey.ShouldEqual, model.APlus)
				convey.So(grades[11].UserID, convey.ShouldEqual, "user_12")
				convey.So(grades[11].Grade, convey.ShouldEqual, model.DMinus)
			})

			convey.Convey("Then wins and playoff odds are populated and bounded", func() {
				for _, g := range writer.batches["league_1"] {
					convey.So(g.ProjectedWins, convey.ShouldBeGreaterThanOrEqualTo, 0)
					convey.So(g.ProjectedWins, convey.ShouldBeLessThanOrEqualTo, 14)
					convey.So(g.PlayoffProbability, convey.ShouldBeGreaterThan, 0)
					convey.So(g.PlayoffProbability, convey.ShouldBeLessThanOrEqualTo, 1)
				}
			})

			convey.Convey("When the same league is graded again", func() {
				again, err := engine.CalculateAllGrades(ctx, sub, resolveAll)

				convey.Convey("Then the run is a no-op", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(again, convey.ShouldBeFalse)
				})
			})
		})

		convey.Convey("When some picks belong to unmapped users", func() {
			sub := buildSubmission("league_2", 12)
			mapped := func(ext string) (string, bool) {
				// Only the first six slots have linked accounts.
				n, _ := strconv.Atoi(ext[len("ext_"):])
				if n <= 6 {
					return "user_" + strconv.Itoa(n), true
				}
				return "", false
			}

			graded, err := engine.CalculateAllGrades(ctx, sub, mapped)

			convey.Convey("Then only mapped teams are graded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(graded, convey.ShouldBeTrue)
				convey.So(len(writer.batches["league_2"]), convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When no pick maps to a member", func() {
			sub := buildSubmission("league_3", 12)
			none := func(string) (string, bool) { return "", false }

			graded, err := engine.CalculateAllGrades(ctx, sub, none)

			convey.Convey("Then nothing is written and the run is a no-op", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(graded, convey.ShouldBeFalse)
				_, ok := writer.batches["league_3"]
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the projection feed fails", func() {
			failing := grading.New(writer, grading.WithProjector(failingProjector{}))
			sub := buildSubmission("league_4", 4)

			graded, err := failing.CalculateAllGrades(ctx, sub, resolveAll)

			convey.Convey("Then the error propagates", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(graded, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the submission omits the league size", func() {
			sub := buildSubmission("league_5", 3)
			sub.LeagueSize = 0

			graded, err := engine.CalculateAllGrades(ctx, sub, resolveAll)

			convey.Convey("Then the default size applies and grading succeeds", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(graded, convey.ShouldBeTrue)
				convey.So(len(writer.batches["league_5"]), convey.ShouldEqual, 3)
			})
		})
	})
}

func TestGradeTies(t *testing.T) {
	convey.Convey("Given two teams with identical projections", t, func() {
		ctx := context.Background()
		writer := newFakeWriter()
		flat := grading.New(writer, grading.WithProjector(flatProjector{}))

		sub := buildSubmission("league_t", 4)
		_, err := flat.CalculateAllGrades(ctx, sub, resolveAll)

		convey.Convey("Then ties keep first-pick insertion order", func() {
			convey.So(err, convey.ShouldBeNil)
			grades := writer.batches["league_t"]
			convey.So(len(grades), convey.ShouldEqual, 4)
			for i, g := range grades {
				convey.So(g.UserID, convey.ShouldEqual, "user_"+strconv.Itoa(i+1))
				convey.So(g.ProjectedRank, convey.ShouldEqual, i+1)
			}
		})
	})
}

// flatProjector gives every pick the same points.
type flatProjector struct{}

func (flatProjector) Project(ctx context.Context, round, pickInRound, overall int) (projection.Result, error) {
	return projection.Result{Position: model.RB, Points: 100}, nil
}
