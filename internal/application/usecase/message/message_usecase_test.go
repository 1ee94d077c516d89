package message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/application/service/servicetest"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type MessageUseCaseSuite struct {
	suite.Suite
	ctx       context.Context
	publisher *servicetest.Publisher
	uc        *MessageUseCase
}

func (s *MessageUseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.publisher = &servicetest.Publisher{}
	s.uc = NewMessageUseCase(memory.NewMessageRepo(), s.publisher, logger.NewNop())
}

func TestMessageUseCase(t *testing.T) {
	suite.Run(t, new(MessageUseCaseSuite))
}

func (s *MessageUseCaseSuite) submit() uuid.UUID {
	m, err := s.uc.Submit(s.ctx, SubmitInput{Name: "Grace", Email: "grace@example.com", Subject: "Hire", Message: "Let's talk"})
	s.Require().NoError(err)
	return m.ID
}

func (s *MessageUseCaseSuite) TestSubmitStartsUnreadAndPublishes() {
	m, err := s.uc.Submit(s.ctx, SubmitInput{Name: "Grace", Email: "grace@example.com", Subject: "Hire", Message: "Let's talk"})
	s.Require().NoError(err)
	s.False(m.IsRead)

	s.Eventually(func() bool { return s.publisher.ReceivedCount() == 1 }, time.Second, 10*time.Millisecond)
}

func (s *MessageUseCaseSuite) TestSubmitValidates() {
	_, err := s.uc.Submit(s.ctx, SubmitInput{Name: "Grace", Email: "nope", Subject: "Hi", Message: "x"})
	s.ErrorIs(err, apperror.ErrInvalidInput)

	_, err = s.uc.Submit(s.ctx, SubmitInput{Name: "Grace", Email: "g@example.com", Subject: "", Message: "x"})
	s.ErrorIs(err, apperror.ErrInvalidInput)
}

func (s *MessageUseCaseSuite) TestReadThenDelete() {
	id := s.submit()

	m, err := s.uc.SetRead(s.ctx, id, true)
	s.Require().NoError(err)
	s.True(m.IsRead)

	s.Require().NoError(s.uc.Delete(s.ctx, id))
	list, err := s.uc.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)

	s.ErrorIs(s.uc.Delete(s.ctx, id), apperror.ErrNotFound)
}

func (s *MessageUseCaseSuite) TestSetReadUnknownID() {
	_, err := s.uc.SetRead(s.ctx, uuid.New(), true)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *MessageUseCaseSuite) TestSubmitSucceedsWhenPublishFails() {
	s.publisher.Fail = true
	s.submit()

	list, err := s.uc.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}
