package testdrafts

import (
	"fmt"
	"log"
)

// letterForRank maps a projected rank to its expected letter grade.
var letterForRank = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-"}

// verifyResults checks every graded league for internal consistency.
func verifyResults(config *Config, drafts []Submission, grades map[string][]GradeRecord, stats *Stats) error {
	log.Println("Verifying results...")

	if len(grades) == 0 {
		return fmt.Errorf("no grades to verify")
	}

	errs := 0
	for _, draft := range drafts {
		records, ok := grades[draft.LeagueID]
		if !ok {
			continue
		}
		if err := verifyLeague(draft, records); err != nil {
			errs++
			log.Printf("league %s verification failed: %v", draft.LeagueID, err)
		}
	}

	stats.VerificationErrors = errs
	if errs > 0 {
		return fmt.Errorf("%d leagues failed verification", errs)
	}

	log.Println("Result verification completed")
	return nil
}

// verifyLeague checks one league's grade list against the submitted draft.
func verifyLeague(draft Submission, records []GradeRecord) error {
	if len(records) != draft.LeagueSize {
		return fmt.Errorf("expected %d grades, got %d", draft.LeagueSize, len(records))
	}

	seenRanks := make(map[int]bool, len(records))
	for _, rec := range records {
		// Ranks must form a permutation of 1..N
		if rec.ProjectedRank < 1 || rec.ProjectedRank > len(records) {
			return fmt.Errorf("user %s has out-of-range rank %d", rec.UserID, rec.ProjectedRank)
		}
		if seenRanks[rec.ProjectedRank] {
			return fmt.Errorf("duplicate rank %d", rec.ProjectedRank)
		}
		seenRanks[rec.ProjectedRank] = true

		// Letter grade follows directly from rank
		expected := "F"
		if rec.ProjectedRank <= len(letterForRank) {
			expected = letterForRank[rec.ProjectedRank-1]
		}
		if rec.Grade != expected {
			return fmt.Errorf("user %s at rank %d has grade %s, expected %s", rec.UserID, rec.ProjectedRank, rec.Grade, expected)
		}

		// Wins are bounded by the season length
		if rec.ProjectedWins < 0 || rec.ProjectedWins > MaxSeasonWins {
			return fmt.Errorf("user %s has impossible win projection %.1f", rec.UserID, rec.ProjectedWins)
		}

		if rec.PlayoffProbability <= 0 || rec.PlayoffProbability > 1 {
			return fmt.Errorf("user %s has invalid playoff probability %.2f", rec.UserID, rec.PlayoffProbability)
		}
	}

	// The list must arrive ordered by rank
	for i := 1; i < len(records); i++ {
		if records[i].ProjectedRank < records[i-1].ProjectedRank {
			return fmt.Errorf("grades not ordered by rank at index %d", i)
		}
	}

	return nil
}
