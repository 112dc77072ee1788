// Package types contains common types shared with the HTTP layer.
package types

import (
	"time"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// GradeRecord is the read shape returned by grade queries.
type GradeRecord struct {
	LeagueID           string                          `json:"league_id"`
	UserID             string                          `json:"user_id"`
	Grade              model.Letter                    `json:"grade"`
	ProjectedRank      int                             `json:"projected_rank"`
	ProjectedPoints    float64                         `json:"projected_points"`
	ProjectedWins      float64                         `json:"projected_wins"`
	PlayoffProbability float64                         `json:"playoff_probability"`
	PositionGrades     map[model.Position]model.Letter `json:"position_grades"`
	BestPicks          []model.PickSummary             `json:"best_picks"`
	WorstPicks         []model.PickSummary             `json:"worst_picks"`
	Analysis           model.Analysis                  `json:"analysis"`
	CalculatedAt       time.Time                       `json:"calculated_at"`
}

// FromGrade converts a domain grade into its API view.
func FromGrade(g model.DraftGrade) GradeRecord {
	return GradeRecord{
		LeagueID:           g.LeagueID,
		UserID:             g.UserID,
		Grade:              g.Grade,
		ProjectedRank:      g.ProjectedRank,
		ProjectedPoints:    g.ProjectedPoints,
		ProjectedWins:      g.ProjectedWins,
		PlayoffProbability: g.PlayoffProbability,
		PositionGrades:     g.PositionGrades,
		BestPicks:          g.BestPicks,
		WorstPicks:         g.WorstPicks,
		Analysis:           g.Analysis,
		CalculatedAt:       g.CalculatedAt,
	}
}
