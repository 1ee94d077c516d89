package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type LogoutUseCase struct {
	revoker service.TokenRevoker
}

func NewLogoutUseCase(revoker service.TokenRevoker) *LogoutUseCase {
	return &LogoutUseCase{revoker: revoker}
}

// Execute revokes the token id until the token would have expired.
func (uc *LogoutUseCase) Execute(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := uc.revoker.Revoke(ctx, jti, time.Until(expiresAt)); err != nil {
		return apperror.NewInternal("failed to revoke token", err)
	}
	return nil
}

type CurrentUserUseCase struct {
	userRepo user.Repository
}

func NewCurrentUserUseCase(repo user.Repository) *CurrentUserUseCase {
	return &CurrentUserUseCase{userRepo: repo}
}

func (uc *CurrentUserUseCase) Execute(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewTokenRejected("token subject no longer exists", err)
		}
		return nil, err
	}
	return u, nil
}
