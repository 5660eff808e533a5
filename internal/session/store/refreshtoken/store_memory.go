package refreshtoken

import (
	"context"
	"sync"
	"time"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// ErrNotFound is returned when a requested record is not found in the store.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Error Contract:
// - Return ErrNotFound when the requested entity does not exist
// - Consume returns domain-coded errors (expired_refresh_token,
//   refresh_reuse_detected) together with the record, so callers can attribute
//   a replay to an account
//
// Records are keyed by token hash; a secondary chain index enforces the
// one-unconsumed-token-per-(account, device-chain) invariant.
type InMemoryStore struct {
	mu      sync.Mutex
	byHash  map[string]*models.RefreshTokenRecord
	byChain map[chainKey]string // -> hash of the single unconsumed record
}

type chainKey struct {
	account id.AccountID
	chain   string
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byHash:  make(map[string]*models.RefreshTokenRecord),
		byChain: make(map[chainKey]string),
	}
}

// Create persists a new refresh record. Any live predecessor on the same
// (account, device-chain) is revoked first, so a chain never holds two
// unconsumed tokens.
func (s *InMemoryStore) Create(_ context.Context, record *models.RefreshTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byHash[record.TokenHash]; exists {
		return dErrors.New(dErrors.CodeConflict, "token hash already exists")
	}

	key := chainKey{account: record.AccountID, chain: record.Device.ChainKey()}
	if prevHash, ok := s.byChain[key]; ok {
		if prev, live := s.byHash[prevHash]; live && !prev.Revoked {
			prev.Revoked = true
		}
	}

	s.byHash[record.TokenHash] = record
	s.byChain[key] = record.TokenHash
	return nil
}

func (s *InMemoryStore) FindByHash(ctx context.Context, tokenHash string) (*models.RefreshTokenRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "refresh token lookup cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.byHash[tokenHash]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Consume atomically validates and marks the record consumed. The check and
// the mark happen under one lock section, so two concurrent rotations of the
// same token cannot both win; the loser observes refresh_reuse_detected.
// On a reuse or expiry rejection the record is still returned so the caller
// can attribute the event to an account.
func (s *InMemoryStore) Consume(ctx context.Context, tokenHash string, now time.Time) (*models.RefreshTokenRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "refresh token consume cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byHash[tokenHash]
	if !ok {
		return nil, ErrNotFound
	}
	if err := record.ValidateForConsume(now); err != nil {
		copied := *record
		return &copied, err
	}
	record.Consume(now)
	copied := *record
	return &copied, nil
}

// RevokeChain revokes the live record of an (account, chain) pair, ending the
// chain with zero successors. Used by logout.
func (s *InMemoryStore) RevokeChain(_ context.Context, accountID id.AccountID, chain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chainKey{account: accountID, chain: chain}
	hash, ok := s.byChain[key]
	if !ok {
		return ErrNotFound
	}
	record, ok := s.byHash[hash]
	if !ok || record.Revoked {
		return ErrNotFound
	}
	record.Revoked = true
	return nil
}

// RevokeByAccount revokes every live refresh record of an account and returns
// how many records changed.
func (s *InMemoryStore) RevokeByAccount(_ context.Context, accountID id.AccountID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	revoked := 0
	for _, record := range s.byHash {
		if record.AccountID == accountID && !record.Revoked {
			record.Revoked = true
			revoked++
		}
	}
	return revoked, nil
}

// ListByAccount returns copies of all refresh records for an account.
func (s *InMemoryStore) ListByAccount(_ context.Context, accountID id.AccountID) ([]*models.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []*models.RefreshTokenRecord
	for _, record := range s.byHash {
		if record.AccountID == accountID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// DeleteExpired prunes expired records and returns the count removed.
func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for hash, record := range s.byHash {
		if record.IsExpired(now) {
			s.remove(hash, record)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteConsumed prunes consumed records older than the retention horizon.
// Recently consumed rows are kept so replay attempts remain attributable.
func (s *InMemoryStore) DeleteConsumed(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for hash, record := range s.byHash {
		if record.Revoked && record.ConsumedAt != nil && record.ConsumedAt.Before(olderThan) {
			s.remove(hash, record)
			deleted++
		}
	}
	return deleted, nil
}

func (s *InMemoryStore) remove(hash string, record *models.RefreshTokenRecord) {
	delete(s.byHash, hash)
	key := chainKey{account: record.AccountID, chain: record.Device.ChainKey()}
	if s.byChain[key] == hash {
		delete(s.byChain, key)
	}
}
