package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type UpdateItemUseCase struct {
	repo        portfolio.Repository
	assets      *asset.Manager
	invalidator *showcase.Invalidator
	logger      logger.Logger
}

func NewUpdateItemUseCase(r portfolio.Repository, assets *asset.Manager, inv *showcase.Invalidator, log logger.Logger) *UpdateItemUseCase {
	return &UpdateItemUseCase{repo: r, assets: assets, invalidator: inv, logger: log}
}

// UpdateItemInput leaves nil fields unchanged.
type UpdateItemInput struct {
	ItemID      uuid.UUID
	Title       *string
	Description *string
	GithubURL   *string
	LiveURL     *string
	Category    *portfolio.Category
	Featured    *bool
	Image       *service.ImageFile
}

type UpdateItemOutput struct {
	Item *portfolio.Item
}

func (uc *UpdateItemUseCase) Execute(ctx context.Context, input UpdateItemInput) (*UpdateItemOutput, error) {
	item, err := uc.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.GithubURL != nil {
		item.GithubURL = *input.GithubURL
	}
	if input.LiveURL != nil {
		item.LiveURL = *input.LiveURL
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Featured != nil {
		item.Featured = *input.Featured
	}
	if err := item.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	var previous, uploaded string
	if input.Image != nil {
		stored, err := uc.assets.Upload(ctx, *input.Image, service.FolderProjects)
		if err != nil {
			return nil, err
		}
		uploaded = stored.Handle
		previous = item.ReplaceImage(stored.URL, stored.Handle)
	}

	if err := uc.repo.Update(ctx, item); err != nil {
		uc.assets.Release(ctx, uploaded, resourceName, item.ID)
		return nil, fmt.Errorf("update portfolio item failed: %w", err)
	}

	uc.invalidator.Invalidate(ctx, showcase.KeyProjects)
	if previous != "" && previous != uploaded {
		uc.assets.Release(ctx, previous, resourceName, item.ID)
	}
	return &UpdateItemOutput{Item: item}, nil
}
