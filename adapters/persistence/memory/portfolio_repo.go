package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type portfolioRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]portfolio.Item
	order []uuid.UUID
}

func NewPortfolioRepo() portfolio.Repository {
	return &portfolioRepo{items: make(map[uuid.UUID]portfolio.Item)}
}

func (r *portfolioRepo) Save(_ context.Context, p *portfolio.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return apperror.NewConflict("portfolio item", "id", p.ID.String())
	}
	r.items[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *portfolioRepo) Update(_ context.Context, p *portfolio.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[p.ID]
	if !ok {
		return apperror.NewNotFound("portfolio item", p.ID.String())
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.items[p.ID] = *p
	return nil
}

func (r *portfolioRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("portfolio item", id.String())
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r *portfolioRepo) FindByID(_ context.Context, id uuid.UUID) (*portfolio.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("portfolio item", id.String())
	}
	return &p, nil
}

func (r *portfolioRepo) List(_ context.Context, filter portfolio.Filter) ([]*portfolio.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*portfolio.Item, 0, len(r.order))
	for _, id := range r.order {
		p := r.items[id]
		if filter.Matches(&p) {
			out = append(out, &p)
		}
	}
	return out, nil
}
