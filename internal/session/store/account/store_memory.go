package account

import (
	"context"
	"strings"
	"sync"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// ErrNotFound is returned when a requested record is not found in the store.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// In-memory account directory. Accounts are seeded at startup; the session
// core never creates or mutates accounts beyond the active flag.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.AccountID]*models.Account
	byEmail map[string]id.AccountID
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.AccountID]*models.Account),
		byEmail: make(map[string]id.AccountID),
	}
}

// Seed loads an account into the directory, replacing any account previously
// registered under the same email.
func (s *InMemoryStore) Seed(account *models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[account.ID] = account
	s.byEmail[normalizeEmail(account.Email)] = account.ID
}

func (s *InMemoryStore) FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "account lookup cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.byID[accountID]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "account lookup cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	accountID, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.byID[accountID]
	return &copied, nil
}

// SetActive flips the account's active flag. Admin surface only.
func (s *InMemoryStore) SetActive(_ context.Context, accountID id.AccountID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byID[accountID]
	if !ok {
		return ErrNotFound
	}
	account.Active = active
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
