package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type DeleteItemUseCase struct {
	repo        portfolio.Repository
	assets      *asset.Manager
	invalidator *showcase.Invalidator
	logger      logger.Logger
}

func NewDeleteItemUseCase(r portfolio.Repository, assets *asset.Manager, inv *showcase.Invalidator, log logger.Logger) *DeleteItemUseCase {
	return &DeleteItemUseCase{repo: r, assets: assets, invalidator: inv, logger: log}
}

// Execute removes the record first; the image is released afterwards and a
// failed release does not fail the delete.
func (uc *DeleteItemUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidator.Invalidate(ctx, showcase.KeyProjects)
	uc.assets.Release(ctx, item.ImagePublicID, resourceName, item.ID)
	return nil
}
