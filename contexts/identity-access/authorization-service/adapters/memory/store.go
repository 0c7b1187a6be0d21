package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fanforge/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "fanforge/contexts/identity-access/authorization-service/domain/errors"
	"fanforge/contexts/identity-access/authorization-service/ports"
)

type Store struct {
	mu          sync.Mutex
	assignments []entities.RoleAssignment
	now         time.Time
	idSeq       int
}

type Seed struct {
	Assignments []entities.RoleAssignment
	Now         time.Time
}

func NewStore(seed Seed) *Store {
	store := &Store{now: seed.Now}
	if store.now.IsZero() {
		store.now = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	}
	store.assignments = append(store.assignments, seed.Assignments...)
	return store
}

var _ ports.Repository = (*Store)(nil)

func (s *Store) ListActiveAssignments(_ context.Context, userID string) ([]entities.RoleAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.RoleAssignment, 0)
	for _, assignment := range s.assignments {
		if assignment.UserID == userID && assignment.IsActive {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (s *Store) GrantRole(_ context.Context, assignment entities.RoleAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.assignments {
		if existing.IsActive &&
			existing.UserID == assignment.UserID &&
			existing.Role == assignment.Role &&
			existing.BrandID == assignment.BrandID {
			return domainerrors.ErrAssignmentDuplicate
		}
	}
	s.assignments = append(s.assignments, assignment)
	return nil
}

func (s *Store) RevokeRole(
	_ context.Context,
	userID string,
	role entities.RoleName,
	brandID string,
	revokedBy string,
	revokedAt time.Time,
) (entities.RoleAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, assignment := range s.assignments {
		if assignment.IsActive &&
			assignment.UserID == userID &&
			assignment.Role == role &&
			assignment.BrandID == brandID {
			assignment.IsActive = false
			assignment.RevokedAt = &revokedAt
			assignment.RevokedBy = revokedBy
			s.assignments[i] = assignment
			return assignment, nil
		}
	}
	return entities.RoleAssignment{}, domainerrors.ErrAssignmentNotFound
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	return fmt.Sprintf("authz-id-%04d", s.idSeq), nil
}
