package ipblock

import (
	"context"
	"sync"
	"time"

	"aegis/internal/reputation/models"
	dErrors "aegis/pkg/domain-errors"
)

// ErrNotFound is returned when a requested record is not found in the store.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// In-memory block list keyed by IP. One entry per IP; escalation overwrites
// the entry in place.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.IpBlockEntry
}

func New() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]*models.IpBlockEntry)}
}

func (s *InMemoryStore) Get(ctx context.Context, ip string) (*models.IpBlockEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "block lookup cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[ip]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Upsert stores the entry, replacing any prior verdict for the IP.
func (s *InMemoryStore) Upsert(_ context.Context, entry *models.IpBlockEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.IP] = entry
	return nil
}

// Delete removes the IP's entry. Used by admin unblock.
func (s *InMemoryStore) Delete(_ context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[ip]; !ok {
		return ErrNotFound
	}
	delete(s.entries, ip)
	return nil
}

// List returns copies of all entries.
func (s *InMemoryStore) List(_ context.Context) ([]*models.IpBlockEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*models.IpBlockEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}

// DeleteExpired prunes temporary blocks past their expiry. Permanent entries
// are never touched.
func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for ip, entry := range s.entries {
		if !entry.IsPermanent() && !entry.IsActive(now) {
			delete(s.entries, ip)
			deleted++
		}
	}
	return deleted, nil
}
