package testdrafts

import "time"

// Config holds configuration for the draft grading test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumLeagues int           // Number of leagues to generate
	LeagueSize int           // Teams per league
	Rounds     int           // Draft rounds per league
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	GradeWait  time.Duration // How long to wait for grading to finish
	OutputFile string        // Output file for submissions
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Pick mirrors the POST /drafts pick schema
type Pick struct {
	Round       int               `json:"round"`
	PickInRound int               `json:"pick_in_round"`
	PlayerID    string            `json:"player_id"`
	PickedBy    string            `json:"picked_by"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	ADP         *float64          `json:"adp,omitempty"`
}

// Submission mirrors the POST /drafts schema
type Submission struct {
	SubmissionID string `json:"submission_id"`
	LeagueID     string `json:"league_id"`
	LeagueSize   int    `json:"league_size"`
	Picks        []Pick `json:"picks"`

	// members maps external user ids to member handles; registered before
	// the draft is submitted and not part of the wire payload.
	Members map[string]string `json:"-"`
}

// GradeRecord mirrors the grade read schema
type GradeRecord struct {
	LeagueID           string  `json:"league_id"`
	UserID             string  `json:"user_id"`
	Grade              string  `json:"grade"`
	ProjectedRank      int     `json:"projected_rank"`
	ProjectedPoints    float64 `json:"projected_points"`
	ProjectedWins      float64 `json:"projected_wins"`
	PlayoffProbability float64 `json:"playoff_probability"`
}

// AckResponse represents the response from draft submission
type AckResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	SubmissionID string `json:"submission_id"`
}

// Stats holds test statistics
type Stats struct {
	LeaguesGenerated   int
	DraftsSubmitted    int
	DraftsSuccessful   int
	DraftsDuplicate    int
	DraftsFailed       int
	LeaguesGraded      int
	GradesRetrieved    int
	VerificationErrors int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
