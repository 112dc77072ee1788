// Package wins converts starter-point totals into projected season wins via
// pairwise logistic comparison.
package wins

import (
	"math"
)

const (
	// logisticScale flattens the win curve; a 20-point projection gap is
	// roughly a 73/27 matchup.
	logisticScale = 20.0
	// seasonGames is the regular-season length wins are normalized to.
	seasonGames = 14.0
)

// WinProbability returns the probability that a team with teamPoints beats
// one with opponentPoints in a single game.
func WinProbability(teamPoints, opponentPoints float64) float64 {
	return 1 / (1 + math.Exp(-(teamPoints-opponentPoints)/logisticScale))
}

// Project estimates season wins for user given every team's starter points.
// The per-opponent win probabilities are averaged and scaled to a 14-game
// season, rounded to one decimal. A single-team league projects 0 wins.
func Project(user string, starterPoints map[string]float64) float64 {
	teamPoints, ok := starterPoints[user]
	if !ok {
		return 0
	}
	opponents := len(starterPoints) - 1
	if opponents < 1 {
		return 0
	}

	var sum float64
	for other, points := range starterPoints {
		if other == user {
			continue
		}
		sum += WinProbability(teamPoints, points)
	}
	wins := sum * seasonGames / float64(opponents)
	return math.Round(wins*10) / 10
}
