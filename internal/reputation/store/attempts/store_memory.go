package attempts

import (
	"context"
	"sync"
	"time"

	"aegis/internal/reputation/models"
	dErrors "aegis/pkg/domain-errors"
)

// In-memory append-only attempt ledger. Rows are indexed by IP; they are never
// mutated after Append, only pruned by age.
type InMemoryStore struct {
	mu   sync.RWMutex
	byIP map[string][]*models.AttackAttemptRecord
}

func New() *InMemoryStore {
	return &InMemoryStore{byIP: make(map[string][]*models.AttackAttemptRecord)}
}

func (s *InMemoryStore) Append(ctx context.Context, record *models.AttackAttemptRecord) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "attempt append cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.byIP[record.IP] = append(s.byIP[record.IP], &copied)
	return nil
}

// ListByIP returns the IP's attempts at or after since, oldest first.
func (s *InMemoryStore) ListByIP(_ context.Context, ip string, since time.Time) ([]*models.AttackAttemptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*models.AttackAttemptRecord
	for _, record := range s.byIP[ip] {
		if !record.Timestamp.Before(since) {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// CountByIP returns how many attempts the IP produced at or after since.
func (s *InMemoryStore) CountByIP(_ context.Context, ip string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.byIP[ip] {
		if !record.Timestamp.Before(since) {
			count++
		}
	}
	return count, nil
}

// DeleteOlderThan prunes attempts before the horizon and returns the count
// removed. Keeps the ledger bounded; escalation state lives on the block
// entry, not here.
func (s *InMemoryStore) DeleteOlderThan(_ context.Context, horizon time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for ip, records := range s.byIP {
		kept := records[:0]
		for _, record := range records {
			if record.Timestamp.Before(horizon) {
				deleted++
				continue
			}
			kept = append(kept, record)
		}
		if len(kept) == 0 {
			delete(s.byIP, ip)
			continue
		}
		s.byIP[ip] = kept
	}
	return deleted, nil
}
