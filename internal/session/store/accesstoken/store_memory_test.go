package accesstoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aegis/internal/session/models"
	id "aegis/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = New()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) record(jti string, accountID id.AccountID) *models.AccessTokenRecord {
	return &models.AccessTokenRecord{
		JTI:       jti,
		AccountID: accountID,
		IssuedAt:  s.now,
		ExpiresAt: s.now.Add(30 * time.Minute),
	}
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	accountID := id.NewAccountID()
	rec := s.record("jti-1", accountID)

	s.Require().NoError(s.store.Create(context.Background(), rec))

	found, err := s.store.FindByJTI(context.Background(), "jti-1")
	s.Require().NoError(err)
	s.Equal(rec.AccountID, found.AccountID)
	s.False(found.Revoked)
}

func (s *InMemoryStoreSuite) TestCreate_DuplicateJTI() {
	accountID := id.NewAccountID()
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-1", accountID)))
	s.Error(s.store.Create(context.Background(), s.record("jti-1", accountID)))
}

func (s *InMemoryStoreSuite) TestFind_NotFound() {
	_, err := s.store.FindByJTI(context.Background(), "missing")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestFind_CancelledContextFailsClosed() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.store.FindByJTI(ctx, "jti-1")
	s.Error(err)
	s.NotErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestRevokeByJTI() {
	accountID := id.NewAccountID()
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-1", accountID)))

	s.Require().NoError(s.store.RevokeByJTI(context.Background(), "jti-1"))

	found, err := s.store.FindByJTI(context.Background(), "jti-1")
	s.Require().NoError(err)
	s.True(found.Revoked)

	s.Require().ErrorIs(s.store.RevokeByJTI(context.Background(), "missing"), ErrNotFound)
}

func (s *InMemoryStoreSuite) TestRevokeByAccount() {
	accountID := id.NewAccountID()
	other := id.NewAccountID()
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-1", accountID)))
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-2", accountID)))
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-3", other)))

	revoked, err := s.store.RevokeByAccount(context.Background(), accountID)
	s.Require().NoError(err)
	s.Equal(2, revoked)

	untouched, err := s.store.FindByJTI(context.Background(), "jti-3")
	s.Require().NoError(err)
	s.False(untouched.Revoked)

	// Second pass revokes nothing new.
	revoked, err = s.store.RevokeByAccount(context.Background(), accountID)
	s.Require().NoError(err)
	s.Equal(0, revoked)
}

func (s *InMemoryStoreSuite) TestListByAccount() {
	accountID := id.NewAccountID()
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-1", accountID)))
	s.Require().NoError(s.store.Create(context.Background(), s.record("jti-2", accountID)))

	records, err := s.store.ListByAccount(context.Background(), accountID)
	s.Require().NoError(err)
	s.Len(records, 2)
}

func (s *InMemoryStoreSuite) TestDeleteExpired() {
	accountID := id.NewAccountID()
	live := s.record("jti-live", accountID)
	expired := s.record("jti-expired", accountID)
	expired.ExpiresAt = s.now.Add(-time.Minute)

	s.Require().NoError(s.store.Create(context.Background(), live))
	s.Require().NoError(s.store.Create(context.Background(), expired))

	deleted, err := s.store.DeleteExpired(context.Background(), s.now)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	_, err = s.store.FindByJTI(context.Background(), "jti-expired")
	s.Require().ErrorIs(err, ErrNotFound)
	_, err = s.store.FindByJTI(context.Background(), "jti-live")
	s.Require().NoError(err)
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}
