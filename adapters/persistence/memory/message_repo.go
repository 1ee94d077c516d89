package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type messageRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]message.Message
	order []uuid.UUID
}

func NewMessageRepo() message.Repository {
	return &messageRepo{items: make(map[uuid.UUID]message.Message)}
}

func (r *messageRepo) Save(_ context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; ok {
		return apperror.NewConflict("message", "id", m.ID.String())
	}
	r.items[m.ID] = *m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *messageRepo) SetRead(_ context.Context, id uuid.UUID, isRead bool) (*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("message", id.String())
	}
	m.IsRead = isRead
	m.UpdatedAt = time.Now().UTC()
	r.items[id] = m
	return &m, nil
}

func (r *messageRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("message", id.String())
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r *messageRepo) FindByID(_ context.Context, id uuid.UUID) (*message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("message", id.String())
	}
	return &m, nil
}

func (r *messageRepo) List(_ context.Context) ([]*message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*message.Message, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		m := r.items[r.order[i]]
		out = append(out, &m)
	}
	return out, nil
}
