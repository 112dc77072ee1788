package testdrafts

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/commishtools/draftgrade/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	adpProfileDivisor  = 4
)

// Constants for ADP perturbation ranges, in overall-pick units.
const (
	steadyJitter  = 6.0  // picks drafted close to consensus
	valueShift    = 20.0 // picks that fell well past their ADP
	reachShift    = 20.0 // picks taken well before their ADP
	noADPFraction = 3    // roughly one pick in three carries no ADP
)

// Constants for ADP profile cases.
const (
	caseSteadyPick = 0
	caseValuePick  = 1
	caseReachPick  = 2
	caseNoADP      = 3
)

// Small pools for plausible player metadata.
var (
	firstNames = []string{"Jalen", "Marcus", "Derrick", "Austin", "Tyreek", "Davante", "Saquon", "Nick", "Justin", "Trevor", "Amari", "Cooper"}
	lastNames  = []string{"Hill", "Barkley", "Chase", "Adams", "Henry", "Jefferson", "Ekeler", "Wilson", "Brown", "Smith", "Jones", "Taylor"}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// generateDrafts creates the configured number of league drafts, each with a
// full snake draft and member mappings.
func generateDrafts(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating league drafts",
		logger.Int("numLeagues", config.NumLeagues),
		logger.Int("leagueSize", config.LeagueSize),
		logger.Int("rounds", config.Rounds))

	drafts := make([]Submission, config.NumLeagues)

	type draftResult struct {
		index int
		draft Submission
		err   error
	}

	resultChan := make(chan draftResult, config.NumLeagues)

	workerCount := minInt(config.Workers, config.NumLeagues)
	draftsPerWorker := config.NumLeagues / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * draftsPerWorker
		end := start + draftsPerWorker
		if worker == workerCount-1 {
			end = config.NumLeagues // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- draftResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- draftResult{index: i, draft: generateSingleDraft(config)}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumLeagues; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during draft generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate draft %d: %w", result.index, result.err)
			}
			drafts[result.index] = result.draft
		}
	}

	stats.LeaguesGenerated = len(drafts)
	logger.Get().Info(ctx, "generated drafts successfully", logger.Int("count", len(drafts)))

	return drafts, nil
}

// generateSingleDraft builds one league's member mappings and snake draft.
func generateSingleDraft(config *Config) Submission {
	leagueID := "league_" + uuid.New().String()

	members := make(map[string]string, config.LeagueSize)
	externalIDs := make([]string, config.LeagueSize)
	for i := 0; i < config.LeagueSize; i++ {
		ext := "ext_" + uuid.New().String()
		externalIDs[i] = ext
		members[ext] = "user_" + strconv.Itoa(i+1)
	}

	picks := make([]Pick, 0, config.Rounds*config.LeagueSize)
	for round := 1; round <= config.Rounds; round++ {
		for slot := 1; slot <= config.LeagueSize; slot++ {
			// Snake order: even rounds reverse the slot
			teamIdx := slot - 1
			if round%2 == 0 {
				teamIdx = config.LeagueSize - slot
			}

			overall := (round-1)*config.LeagueSize + slot
			picks = append(picks, Pick{
				Round:       round,
				PickInRound: slot,
				PlayerID:    "player_" + uuid.New().String(),
				PickedBy:    externalIDs[teamIdx],
				Metadata: map[string]string{
					"first_name": firstNames[getRandomInt(int64(len(firstNames)))],
					"last_name":  lastNames[getRandomInt(int64(len(lastNames)))],
				},
				ADP: generateADP(overall),
			})
		}
	}

	return Submission{
		SubmissionID: uuid.New().String(),
		LeagueID:     leagueID,
		LeagueSize:   config.LeagueSize,
		Picks:        picks,
		Members:      members,
	}
}

// generateADP produces an ADP near the overall pick with a varied profile,
// or nil for picks without consensus data.
func generateADP(overall int) *float64 {
	switch getRandomInt(adpProfileDivisor) {
	case caseSteadyPick:
		adp := float64(overall) + (getRandomFloat()*2-1)*steadyJitter
		if adp < 1 {
			adp = 1
		}
		return &adp
	case caseValuePick:
		// Drafted later than consensus: ADP well above the overall pick
		adp := float64(overall) + valueShift + getRandomFloat()*valueShift
		return &adp
	case caseReachPick:
		// Drafted earlier than consensus: ADP well below the overall pick
		adp := float64(overall) - reachShift - getRandomFloat()*reachShift
		if adp < 1 {
			adp = 1
		}
		return &adp
	default:
		return nil
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
