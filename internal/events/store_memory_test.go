package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestAppendAssignsCommitSequence() {
	first, err := s.store.Append(s.ctx, Event{Registry: "certificate", Action: ActionCertificateIssued, RecordID: 1})
	s.Require().NoError(err)
	second, err := s.store.Append(s.ctx, Event{Registry: "task", Action: ActionTaskCreated, RecordID: 1})
	s.Require().NoError(err)

	s.EqualValues(1, first.Seq)
	s.EqualValues(2, second.Seq)
	s.NotEqual(first.ID, second.ID)

	n, err := s.store.Len(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *InMemoryStoreSuite) TestListAfter() {
	for i := 0; i < 5; i++ {
		_, err := s.store.Append(s.ctx, Event{Registry: "notice", Action: ActionNoticeCreated, RecordID: uint64(i + 1)})
		s.Require().NoError(err)
	}

	tail, err := s.store.List(s.ctx, 3, 0)
	s.Require().NoError(err)
	s.Len(tail, 2)
	s.EqualValues(4, tail[0].Seq)
	s.EqualValues(5, tail[1].Seq)

	limited, err := s.store.List(s.ctx, 0, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
	s.EqualValues(1, limited[0].Seq)

	empty, err := s.store.List(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Empty(empty)
}
