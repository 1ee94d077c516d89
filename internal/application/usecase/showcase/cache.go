package showcase

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const (
	KeyAccount  = "public:info"
	KeySkills   = "public:skills"
	KeyProjects = "public:projects"
)

// Invalidator drops public read models after admin writes. A nil cache makes
// it a no-op.
type Invalidator struct {
	cache  service.ContentCache
	logger logger.Logger
}

func NewInvalidator(cache service.ContentCache, log logger.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: log}
}

func (i *Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if i == nil || i.cache == nil {
		return
	}
	if err := i.cache.Invalidate(context.WithoutCancel(ctx), keys...); err != nil {
		i.logger.Warn("Failed to invalidate public cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
