package accesstoken

import (
	"context"
	"sync"
	"time"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// ErrNotFound is returned when a requested record is not found in the store.
// Services should check for this error using errors.Is(err, store.ErrNotFound).
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
//
// In-memory stores keep the initial implementation lightweight and testable.
// Lookups by JTI are point reads; the account index serves bulk operations.
type InMemoryStore struct {
	mu        sync.RWMutex
	byJTI     map[string]*models.AccessTokenRecord
	byAccount map[id.AccountID]map[string]struct{}
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byJTI:     make(map[string]*models.AccessTokenRecord),
		byAccount: make(map[id.AccountID]map[string]struct{}),
	}
}

func (s *InMemoryStore) Create(_ context.Context, record *models.AccessTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byJTI[record.JTI]; exists {
		return dErrors.New(dErrors.CodeConflict, "jti already exists")
	}
	s.byJTI[record.JTI] = record
	if s.byAccount[record.AccountID] == nil {
		s.byAccount[record.AccountID] = make(map[string]struct{})
	}
	s.byAccount[record.AccountID][record.JTI] = struct{}{}
	return nil
}

func (s *InMemoryStore) FindByJTI(ctx context.Context, jti string) (*models.AccessTokenRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "access token lookup cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.byJTI[jti]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, ErrNotFound
}

// RevokeByJTI flips the revoked flag on a single record.
func (s *InMemoryStore) RevokeByJTI(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byJTI[jti]
	if !ok {
		return ErrNotFound
	}
	record.Revoke()
	return nil
}

// RevokeByAccount flips the revoked flag on every record of an account and
// returns how many records changed.
func (s *InMemoryStore) RevokeByAccount(_ context.Context, accountID id.AccountID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	revoked := 0
	for jti := range s.byAccount[accountID] {
		if record, ok := s.byJTI[jti]; ok && record.Revoke() {
			revoked++
		}
	}
	return revoked, nil
}

// ListByAccount returns copies of all records for an account, newest first left
// to the caller to sort.
func (s *InMemoryStore) ListByAccount(_ context.Context, accountID id.AccountID) ([]*models.AccessTokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*models.AccessTokenRecord, 0, len(s.byAccount[accountID]))
	for jti := range s.byAccount[accountID] {
		if record, ok := s.byJTI[jti]; ok {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// DeleteExpired prunes records past their expiry and returns the count removed.
func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for jti, record := range s.byJTI {
		if record.IsExpired(now) {
			delete(s.byJTI, jti)
			if idx := s.byAccount[record.AccountID]; idx != nil {
				delete(idx, jti)
				if len(idx) == 0 {
					delete(s.byAccount, record.AccountID)
				}
			}
			deleted++
		}
	}
	return deleted, nil
}
