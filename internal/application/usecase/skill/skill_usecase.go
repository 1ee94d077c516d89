package skill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SkillUseCase struct {
	repo        skill.Repository
	invalidator *showcase.Invalidator
	logger      logger.Logger
}

func NewSkillUseCase(r skill.Repository, inv *showcase.Invalidator, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, invalidator: inv, logger: log}
}

type CreateSkillSetInput struct {
	Category skill.Category
	Skills   []skill.Skill
}

func (uc *SkillUseCase) CreateSkillSet(ctx context.Context, in CreateSkillSetInput) (*skill.SkillSet, error) {
	now := time.Now().UTC()
	s := &skill.SkillSet{
		ID:        uuid.New(),
		Category:  in.Category,
		Skills:    in.Skills,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, showcase.KeySkills)
	return s, nil
}

// UpdateSkillSetInput leaves a field unchanged when it is nil.
type UpdateSkillSetInput struct {
	ID       uuid.UUID
	Category *skill.Category
	Skills   []skill.Skill
}

func (uc *SkillUseCase) UpdateSkillSet(ctx context.Context, in UpdateSkillSetInput) (*skill.SkillSet, error) {
	s, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Skills != nil {
		s.Skills = in.Skills
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, showcase.KeySkills)
	return s, nil
}

func (uc *SkillUseCase) DeleteSkillSet(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, showcase.KeySkills)
	return nil
}

func (uc *SkillUseCase) ListSkillSets(ctx context.Context) ([]*skill.SkillSet, error) {
	return uc.repo.List(ctx)
}
