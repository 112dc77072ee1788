package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// MemoryStore implements Store with in-process maps. It backs tests and
// single-node dev runs.
type MemoryStore struct {
	mu      sync.RWMutex
	grades  map[string]map[string]model.DraftGrade // league -> user -> grade
	members map[string]map[string]string           // league -> external id -> member
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		grades:  make(map[string]map[string]model.DraftGrade),
		members: make(map[string]map[string]string),
	}
}

// SaveAll writes the batch under one lock so the guard check and the
// inserts are atomic.
func (s *MemoryStore) SaveAll(ctx context.Context, leagueID string, grades []model.DraftGrade) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.grades[leagueID]) > 0 {
		return false, nil
	}
	byUser := make(map[string]model.DraftGrade, len(grades))
	for _, g := range grades {
		byUser[g.UserID] = g
	}
	s.grades[leagueID] = byUser
	return true, nil
}

// League returns the league's grades ordered by projected rank.
func (s *MemoryStore) League(ctx context.Context, leagueID string) ([]model.DraftGrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUser := s.grades[leagueID]
	out := make([]model.DraftGrade, 0, len(byUser))
	for _, g := range byUser {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProjectedRank < out[j].ProjectedRank
	})
	return out, nil
}

// Grade returns one member's grade.
func (s *MemoryStore) Grade(ctx context.Context, leagueID, userID string) (model.DraftGrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.grades[leagueID][userID]; ok {
		return g, nil
	}
	return model.DraftGrade{}, ErrNotFound
}

// Clear removes every grade for a league.
func (s *MemoryStore) Clear(ctx context.Context, leagueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grades, leagueID)
	return nil
}

// Count returns the number of grades across all leagues.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, byUser := range s.grades {
		n += len(byUser)
	}
	return n
}

// PutMembers registers external-id -> member mappings for a league.
func (s *MemoryStore) PutMembers(ctx context.Context, leagueID string, members map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.members[leagueID] == nil {
		s.members[leagueID] = make(map[string]string, len(members))
	}
	for ext, user := range members {
		s.members[leagueID][ext] = user
	}
	return nil
}

// Resolve looks up the member handle for an external id.
func (s *MemoryStore) Resolve(ctx context.Context, leagueID, externalUserID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.members[leagueID][externalUserID]
	return user, ok
}
