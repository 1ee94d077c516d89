package showcase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// AccountReader resolves the account singleton, creating it when absent.
type AccountReader interface {
	ExecuteGet(ctx context.Context) (*account.Account, error)
}

// ShowcaseUseCase serves the read-only public side. Results are cached when a
// cache is configured and dropped by Invalidator on admin writes.
type ShowcaseUseCase struct {
	accounts  AccountReader
	skills    skill.Repository
	projects  portfolio.Repository
	cache     service.ContentCache
	ttl       time.Duration
	publicURL string
	logger    logger.Logger
}

func NewShowcaseUseCase(
	accounts AccountReader,
	skills skill.Repository,
	projects portfolio.Repository,
	cache service.ContentCache,
	ttl time.Duration,
	publicURL string,
	log logger.Logger,
) *ShowcaseUseCase {
	return &ShowcaseUseCase{
		accounts:  accounts,
		skills:    skills,
		projects:  projects,
		cache:     cache,
		ttl:       ttl,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    log,
	}
}

func cached[T any](ctx context.Context, uc *ShowcaseUseCase, key string, load func(context.Context) (T, error)) (T, error) {
	var out T
	cacheable := uc.cache != nil
	var gen int64
	if cacheable {
		hit, err := uc.cache.Get(ctx, key, &out)
		if err != nil {
			uc.logger.Warn("Public cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
		} else if hit {
			return out, nil
		}
		// the generation must be read before the load
		if gen, err = uc.cache.Generation(ctx, key); err != nil {
			uc.logger.Warn("Public cache generation read failed", zap.String("key", key), zap.Error(err))
			cacheable = false
		}
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}

	if cacheable {
		if err := uc.cache.Set(ctx, key, out, uc.ttl, gen); err != nil {
			uc.logger.Warn("Public cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func (uc *ShowcaseUseCase) GetAccount(ctx context.Context) (*account.Account, error) {
	return cached(ctx, uc, KeyAccount, uc.accounts.ExecuteGet)
}

func (uc *ShowcaseUseCase) ListSkills(ctx context.Context) ([]*skill.SkillSet, error) {
	return cached(ctx, uc, KeySkills, uc.skills.List)
}

// ListProjects caches the full list once and filters it in memory.
func (uc *ShowcaseUseCase) ListProjects(ctx context.Context, filter portfolio.Filter) ([]*portfolio.Item, error) {
	all, err := cached(ctx, uc, KeyProjects, func(ctx context.Context) ([]*portfolio.Item, error) {
		return uc.projects.List(ctx, portfolio.Filter{})
	})
	if err != nil {
		return nil, err
	}

	out := make([]*portfolio.Item, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Feed renders the project list as an RSS feed, newest first.
func (uc *ShowcaseUseCase) Feed(ctx context.Context) (*feeds.Feed, error) {
	owner, err := uc.GetAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("load account for feed: %w", err)
	}
	items, err := uc.ListProjects(ctx, portfolio.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load projects for feed: %w", err)
	}

	feed := &feeds.Feed{
		Title:       owner.Name + " - Projects",
		Link:        &feeds.Link{Href: uc.publicURL},
		Description: owner.Summary,
		Author:      &feeds.Author{Name: owner.Name, Email: owner.Email},
		Created:     time.Now().UTC(),
	}

	for i := len(items) - 1; i >= 0; i-- {
		p := items[i]
		link := p.LiveURL
		if link == "" {
			link = p.GithubURL
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}
	if len(items) > 0 {
		feed.Updated = items[len(items)-1].UpdatedAt
	}

	uc.logger.Debug("RSS feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
