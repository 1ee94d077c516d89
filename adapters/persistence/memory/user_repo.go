package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type userRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewUserRepo() user.Repository {
	return &userRepo{byEmail: make(map[string]user.User)}
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return &u, nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.NewNotFound("user", id.String())
}

func (r *userRepo) Upsert(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Email)
	if existing, ok := r.byEmail[key]; ok {
		u.ID = existing.ID
		u.CreatedAt = existing.CreatedAt
	}
	r.byEmail[key] = *u
	return nil
}
