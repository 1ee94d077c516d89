package skill

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SkillUseCaseSuite struct {
	suite.Suite
	ctx  context.Context
	repo skill.Repository
	uc   *SkillUseCase
}

func (s *SkillUseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewSkillRepo()
	s.uc = NewSkillUseCase(s.repo, nil, logger.NewNop())
}

func TestSkillUseCase(t *testing.T) {
	suite.Run(t, new(SkillUseCaseSuite))
}

func (s *SkillUseCaseSuite) create() *skill.SkillSet {
	set, err := s.uc.CreateSkillSet(s.ctx, CreateSkillSetInput{
		Category: skill.CategoryLanguages,
		Skills:   []skill.Skill{{Name: "Go", Level: 85}, {Name: "TypeScript", Level: 80}},
	})
	s.Require().NoError(err)
	return set
}

func (s *SkillUseCaseSuite) TestCreateRejectsOutOfRangeLevels() {
	for _, level := range []int{101, -1, 150} {
		_, err := s.uc.CreateSkillSet(s.ctx, CreateSkillSetInput{
			Category: skill.CategoryFullStack,
			Skills:   []skill.Skill{{Name: "React", Level: level}},
		})
		s.ErrorIs(err, apperror.ErrInvalidInput, "level %d", level)
	}

	list, err := s.uc.ListSkillSets(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *SkillUseCaseSuite) TestCreateRejectsUnknownCategory() {
	_, err := s.uc.CreateSkillSet(s.ctx, CreateSkillSetInput{
		Category: "Gardening",
		Skills:   []skill.Skill{{Name: "Roses", Level: 10}},
	})
	s.ErrorIs(err, apperror.ErrInvalidInput)
}

func (s *SkillUseCaseSuite) TestCategoryIsNotUnique() {
	s.create()
	s.create()

	list, err := s.uc.ListSkillSets(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *SkillUseCaseSuite) TestPartialUpdateKeepsSkills() {
	set := s.create()
	devops := skill.CategoryDevOps

	updated, err := s.uc.UpdateSkillSet(s.ctx, UpdateSkillSetInput{ID: set.ID, Category: &devops})
	s.Require().NoError(err)
	s.Equal(skill.CategoryDevOps, updated.Category)
	s.Len(updated.Skills, 2)
}

func (s *SkillUseCaseSuite) TestUpdateRejectsBadLevelAndKeepsRecord() {
	set := s.create()

	_, err := s.uc.UpdateSkillSet(s.ctx, UpdateSkillSetInput{ID: set.ID, Skills: []skill.Skill{{Name: "Go", Level: 101}}})
	s.ErrorIs(err, apperror.ErrInvalidInput)

	stored, err := s.repo.FindByID(s.ctx, set.ID)
	s.Require().NoError(err)
	s.Equal(85, stored.Skills[0].Level)
}

func (s *SkillUseCaseSuite) TestUpdateAndDeleteUnknownID() {
	_, err := s.uc.UpdateSkillSet(s.ctx, UpdateSkillSetInput{ID: uuid.New()})
	s.ErrorIs(err, apperror.ErrNotFound)

	s.ErrorIs(s.uc.DeleteSkillSet(s.ctx, uuid.New()), apperror.ErrNotFound)
}

func (s *SkillUseCaseSuite) TestDelete() {
	set := s.create()
	s.Require().NoError(s.uc.DeleteSkillSet(s.ctx, set.ID))

	list, err := s.uc.ListSkillSets(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}
