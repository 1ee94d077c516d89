package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const resourceName = "portfolio item"

type CreateItemUseCase struct {
	repo        portfolio.Repository
	assets      *asset.Manager
	invalidator *showcase.Invalidator
	logger      logger.Logger
}

func NewCreateItemUseCase(r portfolio.Repository, assets *asset.Manager, inv *showcase.Invalidator, log logger.Logger) *CreateItemUseCase {
	return &CreateItemUseCase{repo: r, assets: assets, invalidator: inv, logger: log}
}

type CreateItemInput struct {
	Title       string
	Description string
	GithubURL   string
	LiveURL     string
	Category    portfolio.Category
	Featured    bool
	Image       *service.ImageFile
}

type CreateItemOutput struct {
	Item *portfolio.Item
}

func (uc *CreateItemUseCase) Execute(ctx context.Context, input CreateItemInput) (*CreateItemOutput, error) {
	if input.Image == nil {
		return nil, apperror.NewInvalidInput(portfolio.ErrImageRequired.Error(), portfolio.ErrImageRequired)
	}

	now := time.Now().UTC()
	item := &portfolio.Item{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		GithubURL:   input.GithubURL,
		LiveURL:     input.LiveURL,
		Category:    input.Category,
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// validate text fields before anything is uploaded
	probe := *item
	probe.ImageURL, probe.ImagePublicID = "pending", "pending"
	if err := probe.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	stored, err := uc.assets.Upload(ctx, *input.Image, service.FolderProjects)
	if err != nil {
		return nil, err
	}
	item.ReplaceImage(stored.URL, stored.Handle)

	if err := uc.repo.Save(ctx, item); err != nil {
		uc.assets.Release(ctx, stored.Handle, resourceName, item.ID)
		return nil, fmt.Errorf("save portfolio item failed: %w", err)
	}

	uc.invalidator.Invalidate(ctx, showcase.KeyProjects)
	return &CreateItemOutput{Item: item}, nil
}
