package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
)

type GetItemUseCase struct {
	repo portfolio.Repository
}

func NewGetItemUseCase(r portfolio.Repository) *GetItemUseCase {
	return &GetItemUseCase{repo: r}
}

func (uc *GetItemUseCase) Execute(ctx context.Context, id uuid.UUID) (*portfolio.Item, error) {
	return uc.repo.FindByID(ctx, id)
}
