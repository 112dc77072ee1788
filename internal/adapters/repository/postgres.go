package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore implements Store on PostgreSQL for multi-node deployments.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and ensures the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS grades (
		league_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		grade TEXT NOT NULL,
		projected_rank INTEGER NOT NULL,
		projected_points DOUBLE PRECISION NOT NULL,
		projected_wins DOUBLE PRECISION NOT NULL,
		playoff_probability DOUBLE PRECISION NOT NULL,
		position_grades TEXT NOT NULL,
		best_picks TEXT NOT NULL,
		worst_picks TEXT NOT NULL,
		analysis TEXT NOT NULL,
		calculated_at BIGINT NOT NULL,
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
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// SaveAll runs the guard check and the batch insert inside one transaction.
func (s *PostgresStore) SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin grade batch: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades WHERE league_id = $1`, leagueID).Scan(&existing); err != nil {
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
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, g.LeagueID, g.UserID, string(g.Grade), g.ProjectedRank, g.ProjectedPoints,
			g.ProjectedWins, g.PlayoffProbability, positionGrades, bestPicks, worstPicks,
			analysis, g.CalculatedAt.UnixMilli())
		if err != nil {
			if isPostgresUnique(err) {
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

func isPostgresUnique(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// League returns the league's grades ordered by projected rank.
func (s *PostgresStore) League(ctx context.Context, leagueID string) ([]model.DraftGrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT league_id, user_id, grade, projected_rank, projected_points, projected_wins,
			playoff_probability, position_grades, best_picks, worst_picks, analysis, calculated_at
		FROM grades WHERE league_id = $1 ORDER BY projected_rank ASC
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
func (s *PostgresStore) Grade(ctx context.Context, leagueID, userID string) (model.DraftGrade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT league_id, user_id, grade, projected_rank, projected_points, projected_wins,
			playoff_probability, position_grades, best_picks, worst_picks, analysis, calculated_at
		FROM grades WHERE league_id = $1 AND user_id = $2
	`, leagueID, userID)
	g, err := scanGrade(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DraftGrade{}, ErrNotFound
	}
	return g, err
}

// Clear removes every grade for a league.
func (s *PostgresStore) Clear(ctx context.Context, leagueID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM grades WHERE league_id = $1`, leagueID); err != nil {
		return fmt.Errorf("clear grades: %w", err)
	}
	return nil
}

// Count returns the number of grades across all leagues.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// PutMembers registers external-id -> member mappings for a league.
func (s *PostgresStore) PutMembers(ctx context.Context, leagueID string, members map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin member batch: %w", err)
	}
	defer tx.Rollback()

	for ext, user := range members {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO league_members (league_id, external_id, user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (league_id, external_id) DO UPDATE SET user_id = EXCLUDED.user_id
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
func (s *PostgresStore) Resolve(ctx context.Context, leagueID, externalUserID string) (string, bool) {
	var user string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id FROM league_members WHERE league_id = $1 AND external_id = $2
	`, leagueID, externalUserID).Scan(&user)
	if err != nil {
		return "", false
	}
	return user, true
}

// Close releases the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
