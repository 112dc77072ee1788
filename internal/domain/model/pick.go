// Package model contains domain models passed between layers.
package model

import "fmt"

// Position is a roster position.
type Position string

// Roster positions.
const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	DST Position = "DST"
	K   Position = "K"
)

// Positions lists all positions in a stable order.
var Positions = []Position{QB, RB, WR, TE, DST, K}

// Valid reports whether p is a known roster position.
func (p Position) Valid() bool {
	switch p {
	case QB, RB, WR, TE, DST, K:
		return true
	}
	return false
}

// Reach classification thresholds relative to ADP.
const (
	valueReachThreshold = 12.0
	reachReachThreshold = -12.0
)

// RawPick is a draft pick as delivered by the external draft source.
// It is consumed once by the normalizer and never mutated.
type RawPick struct {
	Round          int               // 1-based draft round
	PickInRound    int               // 1-based slot within the round
	ExternalPlayer string            // platform player id
	ExternalUser   string            // platform user id of the picking team
	Metadata       map[string]string // optional player metadata (first_name, last_name, ...)
	ADP            float64           // average draft position, 0 when unknown
	HasADP         bool
}

// OverallPick computes the absolute pick number across all rounds.
func OverallPick(round, pickInRound, leagueSize int) int {
	return (round-1)*leagueSize + pickInRound
}

// NormalizedPick is the pipeline's internal pick representation. Instances
// live only for the duration of a single grading run.
type NormalizedPick struct {
	Round            int
	PickInRound      int
	Overall          int
	ExternalPlayer   string
	ExternalUser     string
	User             string // resolved member handle
	PlayerName       string
	Position         Position
	ProjectedPoints  float64
	ReplacementValue float64 // projected points minus the position's replacement level
	ADP              float64
	HasADP           bool
}

// ReachValue is the distance between where the player was expected to go
// (ADP) and where he was actually taken. Positive means the pick fell past
// its ADP. Returns 0 when no ADP data is available.
func (p NormalizedPick) ReachValue() float64 {
	if !p.HasADP {
		return 0
	}
	return p.ADP - float64(p.Overall)
}

// IsValue reports whether the pick fell well past its ADP. A pick without
// ADP data is neither a value nor a reach.
func (p NormalizedPick) IsValue() bool {
	return p.HasADP && p.ReachValue() > valueReachThreshold
}

// IsReach reports whether the pick was taken well before its ADP.
func (p NormalizedPick) IsReach() bool {
	return p.HasADP && p.ReachValue() < reachReachThreshold
}

// Summary produces the compact pick view persisted in best/worst lists.
func (p NormalizedPick) Summary() PickSummary {
	return PickSummary{
		Player:   p.PlayerName,
		Position: p.Position,
		Round:    p.Round,
		Pick:     p.PickInRound,
		Overall:  p.Overall,
		Reach:    p.ReachValue(),
	}
}

// PickSummary is the durable, display-oriented shape of a pick.
type PickSummary struct {
	Player   string   `json:"player"`
	Position Position `json:"position"`
	Round    int      `json:"round"`
	Pick     int      `json:"pick"`
	Overall  int      `json:"overall"`
	Reach    float64  `json:"reach"`
}

func (s PickSummary) String() string {
	return fmt.Sprintf("Round %d, Pick %d: %s (%s)", s.Round, s.Pick, s.Player, s.Position)
}
