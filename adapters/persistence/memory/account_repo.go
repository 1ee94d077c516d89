// Package memory implements the domain repositories in process memory.
// It backs the "memory" storage driver and the use case tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type accountRepo struct {
	mu      sync.Mutex
	current *account.Account
}

func NewAccountRepo() account.Repository {
	return &accountRepo{}
}

func (r *accountRepo) GetOrCreate(_ context.Context, defaults *account.Account) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		now := time.Now().UTC()
		a := *defaults
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.Version = 1
		a.CreatedAt = now
		a.UpdatedAt = now
		r.current = &a
	}
	out := *r.current
	return &out, nil
}

func (r *accountRepo) Update(_ context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.ID != a.ID {
		return apperror.NewNotFound("account info", a.ID.String())
	}
	a.Version = r.current.Version + 1
	a.CreatedAt = r.current.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	stored := *a
	r.current = &stored
	return nil
}
