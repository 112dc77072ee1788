// Package repository defines the grade and membership store interfaces and
// their backends.
package repository

import (
	"context"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// GradeStore provides durable access to draft grades. Grades are unique per
// (league, user) and written only in whole-league batches.
type GradeStore interface {
	// SaveAll persists one league's grades in a single transaction. The
	// "already graded" check happens inside the same transaction; when any
	// grade exists for the league the batch is not written and SaveAll
	// returns false with no error. A concurrent writer losing the race on
	// the uniqueness constraint is likewise reported as false, not an
	// error.
	SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error)

	// League returns a league's grades ordered by projected rank.
	League(ctx context.Context, leagueID string) ([]model.DraftGrade, error)

	// Grade returns one member's grade. Returns ErrNotFound when absent.
	Grade(ctx context.Context, leagueID, userID string) (model.DraftGrade, error)

	// Clear removes every grade for a league, re-arming the one-shot guard.
	Clear(ctx context.Context, leagueID string) error

	// Count returns the number of grades tracked across all leagues.
	Count(ctx context.Context) int
}

// MemberStore maps external platform user ids to league member handles.
type MemberStore interface {
	// PutMembers registers or replaces external-id -> member mappings.
	PutMembers(ctx context.Context, leagueID string, members map[string]string) error

	// Resolve returns the member handle linked to an external id, or false
	// when no member has linked that account.
	Resolve(ctx context.Context, leagueID, externalUserID string) (string, bool)
}

// Store combines both stores; every backend implements it.
type Store interface {
	GradeStore
	MemberStore
}
