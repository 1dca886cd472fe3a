//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	audit "vetting/pkg/platform/audit"
	auditpostgres "vetting/pkg/platform/audit/store/postgres"
	"vetting/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditpostgres.Store
	ctx      context.Context
}

func TestAuditStoreSuite(t *testing.T) {
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = auditpostgres.New(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx))
}

func (s *AuditStoreSuite) TestAppendIsIdempotentPerID() {
	event := audit.Event{
		ID:        "evt-1",
		Timestamp: time.Now().UTC(),
		Subject:   "n1",
		Action:    string(audit.EventNomineeStatusChanged),
		ActorID:   "rev-1",
		Decision:  "2:Approved",
	}
	s.Require().NoError(s.store.Append(s.ctx, event))
	s.Require().NoError(s.store.Append(s.ctx, event))

	events, err := s.store.ListBySubject(s.ctx, "n1")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.CategoryCompliance, events[0].Category)
	s.Equal("2:Approved", events[0].Decision)
	s.Empty(events[0].Batch)
}

func (s *AuditStoreSuite) TestListRecentReturnsNewestWindowOldestFirst() {
	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.store.Append(s.ctx, audit.Event{
			ID:        id,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Subject:   "n1",
			Action:    string(audit.EventNomineeOpened),
		}))
	}

	events, err := s.store.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("b", events[0].ID)
	s.Equal("c", events[1].ID)
}
