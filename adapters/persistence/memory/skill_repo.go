package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type skillRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*skill.SkillSet
	order []uuid.UUID
}

func NewSkillRepo() skill.Repository {
	return &skillRepo{items: make(map[uuid.UUID]*skill.SkillSet)}
}

func cloneSkillSet(s *skill.SkillSet) *skill.SkillSet {
	out := *s
	out.Skills = slices.Clone(s.Skills)
	return &out
}

func (r *skillRepo) Save(_ context.Context, s *skill.SkillSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; ok {
		return apperror.NewConflict("skill set", "id", s.ID.String())
	}
	r.items[s.ID] = cloneSkillSet(s)
	r.order = append(r.order, s.ID)
	return nil
}

func (r *skillRepo) Update(_ context.Context, s *skill.SkillSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[s.ID]
	if !ok {
		return apperror.NewNotFound("skill set", s.ID.String())
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.items[s.ID] = cloneSkillSet(s)
	return nil
}

func (r *skillRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("skill set", id.String())
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r *skillRepo) FindByID(_ context.Context, id uuid.UUID) (*skill.SkillSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("skill set", id.String())
	}
	return cloneSkillSet(s), nil
}

func (r *skillRepo) List(_ context.Context) ([]*skill.SkillSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*skill.SkillSet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneSkillSet(r.items[id]))
	}
	return out, nil
}
