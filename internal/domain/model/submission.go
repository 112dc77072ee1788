package model

// DraftSubmission is one complete draft payload submitted for grading.
// Fields mirror the POST /drafts schema.
type DraftSubmission struct {
	SubmissionID string // unique id for idempotency
	LeagueID     string
	LeagueSize   int // team count, 0 means "use the configured default"
	Picks        []RawPick
}
