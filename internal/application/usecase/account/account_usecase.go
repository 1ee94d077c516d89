package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type AccountUseCase struct {
	repo        account.Repository
	assets      *asset.Manager
	invalidator *showcase.Invalidator
	defaults    config.AccountDefaults
	logger      logger.Logger
}

func NewAccountUseCase(
	repo account.Repository,
	assets *asset.Manager,
	invalidator *showcase.Invalidator,
	defaults config.AccountDefaults,
	log logger.Logger,
) *AccountUseCase {
	return &AccountUseCase{repo: repo, assets: assets, invalidator: invalidator, defaults: defaults, logger: log}
}

// DefaultAccount builds the record inserted on first read.
func DefaultAccount(d config.AccountDefaults) *account.Account {
	return &account.Account{
		ID:      uuid.New(),
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Summary: d.Summary,
		About:   d.About,
	}
}

// ExecuteGet never reports not-found: the singleton is created on demand.
func (uc *AccountUseCase) ExecuteGet(ctx context.Context) (*account.Account, error) {
	a, err := uc.repo.GetOrCreate(ctx, DefaultAccount(uc.defaults))
	if err != nil {
		return nil, fmt.Errorf("get account info failed: %w", err)
	}
	return a, nil
}

type UpdateInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Summary      *string
	About        *string
	Experience   *int
	Project      *int
	Hackathon    *int
	Certificate  *int
	Award        *int
	Technology   *int
	ProfileImage *service.ImageFile
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ExecuteUpdate applies a partial update. A new profile image is uploaded
// first, persisted next, and the previous image is released last.
func (uc *AccountUseCase) ExecuteUpdate(ctx context.Context, in UpdateInput) (*account.Account, error) {
	a, err := uc.repo.GetOrCreate(ctx, DefaultAccount(uc.defaults))
	if err != nil {
		return nil, fmt.Errorf("load account info failed: %w", err)
	}

	setIf(&a.Name, in.Name)
	setIf(&a.Email, in.Email)
	setIf(&a.Phone, in.Phone)
	setIf(&a.Summary, in.Summary)
	setIf(&a.About, in.About)
	setIf(&a.Counters.Experience, in.Experience)
	setIf(&a.Counters.Project, in.Project)
	setIf(&a.Counters.Hackathon, in.Hackathon)
	setIf(&a.Counters.Certificate, in.Certificate)
	setIf(&a.Counters.Award, in.Award)
	setIf(&a.Counters.Technology, in.Technology)

	if err := a.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	var previous, uploaded string
	if in.ProfileImage != nil {
		stored, err := uc.assets.Upload(ctx, *in.ProfileImage, service.FolderProfile)
		if err != nil {
			return nil, err
		}
		uploaded = stored.Handle
		previous = a.SetProfileImage(stored.URL, stored.Handle)
	}

	if err := uc.repo.Update(ctx, a); err != nil {
		uc.assets.Release(ctx, uploaded, "account info", a.ID)
		return nil, fmt.Errorf("update account info failed: %w", err)
	}

	uc.invalidator.Invalidate(ctx, showcase.KeyAccount)
	if previous != "" && previous != uploaded {
		uc.assets.Release(ctx, previous, "account info", a.ID)
	}
	return a, nil
}
