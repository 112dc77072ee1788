package model

import "time"

// Letter is a letter grade, A+ through F.
type Letter string

// Letter grades in descending order.
const (
	APlus  Letter = "A+"
	A      Letter = "A"
	AMinus Letter = "A-"
	BPlus  Letter = "B+"
	B      Letter = "B"
	BMinus Letter = "B-"
	CPlus  Letter = "C+"
	C      Letter = "C"
	CMinus Letter = "C-"
	DPlus  Letter = "D+"
	D      Letter = "D"
	DMinus Letter = "D-"
	F      Letter = "F"
)

// PositionStrength grades a team's depth at one position.
type PositionStrength struct {
	Value float64 `json:"value"` // summed replacement value across picks
	Count int     `json:"count"` // number of picks at the position
	Grade Letter  `json:"grade"`
}

// TeamProjection accumulates one team's per-run projections. It is keyed by
// the owning member within a single grading run and never persisted.
type TeamProjection struct {
	User               string
	StarterPoints      float64
	Balance            map[Position]PositionStrength
	Picks              []NormalizedPick
	Rank               int // 1-based, assigned after full-league ranking
	ProjectedWins      float64
	PlayoffProbability float64
}

// Analysis is the generated natural-language breakdown of a draft.
type Analysis struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Summary    string   `json:"summary"`
}

// DraftGrade is the durable grading output, one row per (league, user).
type DraftGrade struct {
	LeagueID           string
	UserID             string
	Grade              Letter
	ProjectedRank      int
	ProjectedPoints    float64
	ProjectedWins      float64
	PlayoffProbability float64
	PositionGrades     map[Position]Letter
	BestPicks          []PickSummary
	WorstPicks         []PickSummary
	Analysis           Analysis
	CalculatedAt       time.Time
}
