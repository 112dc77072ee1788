// Package strength grades a team's positional depth against fixed
// replacement-value thresholds.
package strength

import (
	"github.com/commishtools/draftgrade/internal/domain/model"
)

// thresholds holds the inclusive lower bounds for A, B, C and D grades.
// Anything below the D bound is an F.
type thresholds struct {
	a, b, c, d float64
}

// GradedPositions lists the positions covered by the threshold table.
// Kickers and defenses carry no meaningful replacement spread and are not
// graded here.
var GradedPositions = []model.Position{model.QB, model.RB, model.WR, model.TE}

var tables = map[model.Position]thresholds{
	model.QB: {a: 40, b: 20, c: 10, d: 0},
	model.RB: {a: 120, b: 80, c: 40, d: 0},
	model.WR: {a: 100, b: 60, c: 30, d: 0},
	model.TE: {a: 30, b: 15, c: 5, d: 0},
}

// GradeValue maps a summed replacement value at pos to a letter grade.
func GradeValue(pos model.Position, value float64) model.Letter {
	t, ok := tables[pos]
	if !ok {
		return model.F
	}
	switch {
	case value >= t.a:
		return model.A
	case value >= t.b:
		return model.B
	case value >= t.c:
		return model.C
	case value >= t.d:
		return model.D
	default:
		return model.F
	}
}

// Analyze buckets a team's picks by position and grades each graded
// position's total replacement value. Positions with no picks still appear
// with a zero value so the synthesizer can flag the hole.
func Analyze(picks []model.NormalizedPick) map[model.Position]model.PositionStrength {
	balance := make(map[model.Position]model.PositionStrength, len(GradedPositions))
	for _, pos := range GradedPositions {
		balance[pos] = model.PositionStrength{Grade: GradeValue(pos, 0)}
	}
	for _, p := range picks {
		if _, graded := tables[p.Position]; !graded {
			continue
		}
		ps := balance[p.Position]
		ps.Value += p.ReplacementValue
		ps.Count++
		balance[p.Position] = ps
	}
	for pos, ps := range balance {
		ps.Grade = GradeValue(pos, ps.Value)
		balance[pos] = ps
	}
	return balance
}
