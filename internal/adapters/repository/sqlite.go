package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS grades (
		league_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		grade TEXT NOT NULL,
		projected_rank INTEGER NOT NULL,
		projected_points REAL NOT NULL,
		projected_wins REAL NOT NULL,
		playoff_probability REAL NOT NULL,
		position_grades TEXT NOT NULL,
		best_picks TEXT NOT NULL,
		worst_picks TEXT NOT NULL,
		analysis TEXT NOT NULL,
		calculated_at INTEGER NOT NULL,
		PRIMARY KEY (league_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS league_members (
		league_id TEXT NOT NULL,
		external_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (league_id, external_id)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}

// SaveAll runs the guard check and the batch insert inside one transaction.
func (s *SQLiteStore) SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin grade batch: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades WHERE league_id = ?`, leagueID).Scan(&existing); err != nil {
		return false, fmt.Errorf("check existing grades: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	for _, g := range grades {
		positionGrades, bestPicks, worstPicks, analysis, err := marshalGrade(g)
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grades (league_id, user_id, grade, projected_rank, projected_points,
				projected_wins, playoff_probability, position_grades, best_picks, worst_picks,
				analysis, calculated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, g.LeagueID, g.UserID, string(g.Grade), g.ProjectedRank, g.ProjectedPoints,
			g.ProjectedWins, g.PlayoffProbability, positionGrades, bestPicks, worstPicks,
			analysis, g.CalculatedAt.UnixMilli())
		if err != nil {
			if isSQLiteConstraint(err) {
				// A concurrent run inserted first; treat as no-op.
				return false, nil
			}
			return false, fmt.Errorf("insert grade for %s: %w", g.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit grade batch: %w", err)
	}
	return true, nil
}

func isSQLiteConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// League returns the league's grades ordered by projected rank.
func (s *SQLiteStore) League(ctx context.Context, leagueID string) ([]model.DraftGrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT league_id, user_id, grade, projected_rank, projected_points, projected_wins,
			playoff_probability, position_grades, best_picks, worst_picks, analysis, calculated_at
		FROM grades WHERE league_id = ? ORDER BY projected_rank ASC
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("query league grades: %w", err)
	}
	defer rows.Close()

	var out []model.DraftGrade
	for rows.Next() {
		g, err := scanGrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate league grades: %w", err)
	}
	return out, nil
}

// Grade returns one member's grade.
func (s *SQLiteStore) Grade(ctx context.Context, leagueID, userID string) (model.DraftGrade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT league_id, user_id, grade, projected_rank, projected_points, projected_wins,
			playoff_probability, position_grades, best_picks, worst_picks, analysis, calculated_at
		FROM grades WHERE league_id = ? AND user_id = ?
	`, leagueID, userID)
	g, err := scanGrade(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DraftGrade{}, ErrNotFound
	}
	return g, err
}

// Clear removes every grade for a league.
func (s *SQLiteStore) Clear(ctx context.Context, leagueID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM grades WHERE league_id = ?`, leagueID); err != nil {
		return fmt.Errorf("clear grades: %w", err)
	}
	return nil
}

// Count returns the number of grades across all leagues.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// PutMembers registers external-id -> member mappings for a league.
func (s *SQLiteStore) PutMembers(ctx context.Context, leagueID string, members map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin member batch: %w", err)
	}
	defer tx.Rollback()

	for ext, user := range members {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO league_members (league_id, external_id, user_id)
			VALUES (?, ?, ?)
			ON CONFLICT (league_id, external_id) DO UPDATE SET user_id = excluded.user_id
		`, leagueID, ext, user)
		if err != nil {
			return fmt.Errorf("upsert member %s: %w", ext, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit member batch: %w", err)
	}
	return nil
}

// Resolve looks up the member handle for an external id.
func (s *SQLiteStore) Resolve(ctx context.Context, leagueID, externalUserID string) (string, bool) {
	var user string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id FROM league_members WHERE league_id = ? AND external_id = ?
	`, leagueID, externalUserID).Scan(&user)
	if err != nil {
		return "", false
	}
	return user, true
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// marshalGrade serializes the structured grade columns to JSON.
func marshalGrade(g model.DraftGrade) (positionGrades, bestPicks, worstPicks, analysis string, err error) {
	pg, err := json.Marshal(g.PositionGrades)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshal position grades: %w", err)
	}
	bp, err := json.Marshal(g.BestPicks)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshal best picks: %w", err)
	}
	wp, err := json.Marshal(g.WorstPicks)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshal worst picks: %w", err)
	}
	an, err := json.Marshal(g.Analysis)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshal analysis: %w", err)
	}
	return string(pg), string(bp), string(wp), string(an), nil
}

// scanGrade reads one grade row via the provided Scan function.
func scanGrade(scan func(dest ...any) error) (model.DraftGrade, error) {
	var (
		g              model.DraftGrade
		gradeStr       string
		positionGrades string
		bestPicks      string
		worstPicks     string
		analysis       string
		calculatedAt   int64
	)
	err := scan(&g.LeagueID, &g.UserID, &gradeStr, &g.ProjectedRank, &g.ProjectedPoints,
		&g.ProjectedWins, &g.PlayoffProbability, &positionGrades, &bestPicks, &worstPicks,
		&analysis, &calculatedAt)
	if err != nil {
		return model.DraftGrade{}, err
	}
	g.Grade = model.Letter(gradeStr)
	g.CalculatedAt = time.UnixMilli(calculatedAt)
	if err := json.Unmarshal([]byte(positionGrades), &g.PositionGrades); err != nil {
		return model.DraftGrade{}, fmt.Errorf("unmarshal position grades: %w", err)
	}
	if err := json.Unmarshal([]byte(bestPicks), &g.BestPicks); err != nil {
		return model.DraftGrade{}, fmt.Errorf("unmarshal best picks: %w", err)
	}
	if err := json.Unmarshal([]byte(worstPicks), &g.WorstPicks); err != nil {
		return model.DraftGrade{}, fmt.Errorf("unmarshal worst picks: %w", err)
	}
	if err := json.Unmarshal([]byte(analysis), &g.Analysis); err != nil {
		return model.DraftGrade{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return g, nil
}
