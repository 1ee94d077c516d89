package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SeedOwnerUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewSeedOwnerUseCase(repo user.Repository, log logger.Logger) *SeedOwnerUseCase {
	return &SeedOwnerUseCase{userRepo: repo, logger: log}
}

type SeedOwnerInput struct {
	Name     string
	Email    string
	Password string
}

// Execute creates the admin account, or resets its password when the email
// already exists.
func (uc *SeedOwnerUseCase) Execute(ctx context.Context, in SeedOwnerInput) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.NewInvalidInput("owner email is not a valid address", err)
	}
	if len(in.Password) < 8 {
		return nil, apperror.NewInvalidInput("owner password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash owner password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Upsert(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("Owner account seeded", zap.String("email", email), zap.String("user_id", u.ID.String()))
	return u, nil
}
