package portfolio

import (
	"context"
	"fmt"

	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
)

type ListItemsUseCase struct {
	repo portfolio.Repository
}

func NewListItemsUseCase(r portfolio.Repository) *ListItemsUseCase {
	return &ListItemsUseCase{repo: r}
}

func (uc *ListItemsUseCase) Execute(ctx context.Context, filter portfolio.Filter) ([]*portfolio.Item, error) {
	items, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items failed: %w", err)
	}
	return items, nil
}
