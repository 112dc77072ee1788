// Package grade synthesizes final draft grades from a team's projections.
package grade

import (
	"fmt"
	"sort"
	"time"

	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/strength"
)

// maxPickHighlights caps the best/worst pick lists.
const maxPickHighlights = 3

// stealCount is the number of value or reach picks that triggers the
// corresponding analysis line.
const stealCount = 3

// rankLetters maps projected rank 1..12 to the overall letter grade.
// Ranks beyond 12 are an F.
var rankLetters = []model.Letter{
	model.APlus, model.A, model.AMinus,
	model.BPlus, model.B, model.BMinus,
	model.CPlus, model.C, model.CMinus,
	model.DPlus, model.D, model.DMinus,
}

// Letter returns the overall grade for a projected rank.
func Letter(rank int) model.Letter {
	if rank >= 1 && rank <= len(rankLetters) {
		return rankLetters[rank-1]
	}
	return model.F
}

// PlayoffProbability maps a projected rank to playoff odds, assuming a
// six-team bracket.
func PlayoffProbability(rank int) float64 {
	switch {
	case rank <= 2:
		return 0.95
	case rank <= 4:
		return 0.80
	case rank <= 6:
		return 0.60
	case rank <= 8:
		return 0.35
	case rank <= 10:
		return 0.20
	case rank <= 12:
		return 0.05
	default:
		return 0.02
	}
}

// BestPicks returns up to three value picks, best reach value first.
func BestPicks(picks []model.NormalizedPick) []model.PickSummary {
	var values []model.NormalizedPick
	for _, p := range picks {
		if p.IsValue() {
			values = append(values, p)
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].ReachValue() > values[j].ReachValue()
	})
	return summarize(values)
}

// WorstPicks returns up to three reach picks, most negative first.
func WorstPicks(picks []model.NormalizedPick) []model.PickSummary {
	var reaches []model.NormalizedPick
	for _, p := range picks {
		if p.IsReach() {
			reaches = append(reaches, p)
		}
	}
	sort.SliceStable(reaches, func(i, j int) bool {
		return reaches[i].ReachValue() < reaches[j].ReachValue()
	})
	return summarize(reaches)
}

func summarize(picks []model.NormalizedPick) []model.PickSummary {
	n := len(picks)
	if n > maxPickHighlights {
		n = maxPickHighlights
	}
	out := make([]model.PickSummary, 0, n)
	for _, p := range picks[:n] {
		out = append(out, p.Summary())
	}
	return out
}

// Analyze generates the rule-based natural-language breakdown.
func Analyze(rank int, balance map[model.Position]model.PositionStrength, picks []model.NormalizedPick) model.Analysis {
	analysis := model.Analysis{
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	for _, pos := range strength.GradedPositions {
		ps, ok := balance[pos]
		if !ok {
			continue
		}
		switch ps.Grade {
		case model.A:
			analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("Elite %s depth", pos))
		case model.B:
			analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("Strong %s group", pos))
		case model.D, model.F:
			analysis.Weaknesses = append(analysis.Weaknesses, fmt.Sprintf("Weak %s depth", pos))
		}
	}

	var values, reaches int
	for _, p := range picks {
		if p.IsValue() {
			values++
		}
		if p.IsReach() {
			reaches++
		}
	}
	if values >= stealCount {
		analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("Excellent draft value with %d steals", values))
	}
	if reaches >= stealCount {
		analysis.Weaknesses = append(analysis.Weaknesses, fmt.Sprintf("Reached on %d picks", reaches))
	}

	analysis.Summary = summaryForRank(rank)
	return analysis
}

func summaryForRank(rank int) string {
	switch {
	case rank <= 3:
		return "Your draft sets you up as a championship contender."
	case rank <= 6:
		return "A solid draft that should have you in the playoff hunt."
	case rank <= 9:
		return "A bubble team draft. A few smart moves could swing your season."
	case rank <= 12:
		return "A rebuilding draft. Work the trade market early."
	default:
		return "Time to become a waiver wire warrior."
	}
}

// Synthesize combines a fully ranked team projection into its durable grade.
func Synthesize(leagueID string, tp model.TeamProjection, now time.Time) model.DraftGrade {
	positionGrades := make(map[model.Position]model.Letter, len(tp.Balance))
	for pos, ps := range tp.Balance {
		positionGrades[pos] = ps.Grade
	}
	return model.DraftGrade{
		LeagueID:           leagueID,
		UserID:             tp.User,
		Grade:              Letter(tp.Rank),
		ProjectedRank:      tp.Rank,
		ProjectedPoints:    tp.StarterPoints,
		ProjectedWins:      tp.ProjectedWins,
		PlayoffProbability: tp.PlayoffProbability,
		PositionGrades:     positionGrades,
		BestPicks:          BestPicks(tp.Picks),
		WorstPicks:         WorstPicks(tp.Picks),
		Analysis:           Analyze(tp.Rank, tp.Balance, tp.Picks),
		CalculatedAt:       now,
	}
}
