package securityversion

import (
	"context"
	"sync"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// In-memory security-version counter store.
//
// Versions start at 0 for every account and are monotonically non-decreasing;
// they never reset. Bump is the O(1) "log out everywhere": every token minted
// before the bump carries a smaller version and fails validation without any
// per-token writes.
type InMemoryStore struct {
	mu       sync.RWMutex
	versions map[id.AccountID]int64
}

func New() *InMemoryStore {
	return &InMemoryStore{versions: make(map[id.AccountID]int64)}
}

// Current returns the account's security version; unknown accounts are at 0.
func (s *InMemoryStore) Current(ctx context.Context, accountID id.AccountID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "security version lookup cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[accountID], nil
}

// Bump atomically increments the account's version, returning the new and
// previous values. The previous value exists only for audit logging.
func (s *InMemoryStore) Bump(_ context.Context, accountID id.AccountID) (current int64, previous int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous = s.versions[accountID]
	current = previous + 1
	s.versions[accountID] = current
	return current, previous, nil
}
