package showcase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type staticAccounts struct {
	repo account.Repository
}

func (s staticAccounts) ExecuteGet(ctx context.Context) (*account.Account, error) {
	return s.repo.GetOrCreate(ctx, &account.Account{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Summary: "Builder"})
}

// racingRepo runs afterLoad once, after the list was read but before the
// caller sees it.
type racingRepo struct {
	portfolio.Repository
	afterLoad func()
}

func (r *racingRepo) List(ctx context.Context, filter portfolio.Filter) ([]*portfolio.Item, error) {
	items, err := r.Repository.List(ctx, filter)
	if r.afterLoad != nil {
		hook := r.afterLoad
		r.afterLoad = nil
		hook()
	}
	return items, err
}

type ShowcaseSuite struct {
	suite.Suite
	ctx         context.Context
	mr          *miniredis.Miniredis
	client      *redis.Client
	skills      skill.Repository
	projects    portfolio.Repository
	uc          *ShowcaseUseCase
	invalidator *Invalidator
	cache       service.ContentCache
}

func (s *ShowcaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	cache := persistence.NewRedisContentCache(s.client)

	s.skills = memory.NewSkillRepo()
	s.projects = memory.NewPortfolioRepo()
	s.uc = NewShowcaseUseCase(staticAccounts{memory.NewAccountRepo()}, s.skills, s.projects, cache, time.Minute, "https://me.dev/", logger.NewNop())
	s.invalidator = NewInvalidator(cache, logger.NewNop())
	s.cache = cache
}

func (s *ShowcaseSuite) TearDownTest() {
	_ = s.client.Close()
}

func TestShowcase(t *testing.T) {
	suite.Run(t, new(ShowcaseSuite))
}

func (s *ShowcaseSuite) addProject(title string, cat portfolio.Category, featured bool) {
	now := time.Now().UTC()
	s.Require().NoError(s.projects.Save(s.ctx, &portfolio.Item{
		ID: uuid.New(), Title: title, Description: "d", GithubURL: "https://github.com/x/" + title,
		Category: cat, Featured: featured, ImageURL: "https://img/" + title, ImagePublicID: "portfolio/projects/" + title,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (s *ShowcaseSuite) TestProjectsAreCachedUntilInvalidated() {
	s.addProject("one", portfolio.CategoryBackend, false)

	first, err := s.uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Len(first, 1)
	s.True(s.mr.Exists("portfolio:cache:" + KeyProjects))

	s.addProject("two", portfolio.CategoryFrontend, true)
	stale, err := s.uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Len(stale, 1)

	s.invalidator.Invalidate(s.ctx, KeyProjects)
	fresh, err := s.uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Len(fresh, 2)
}

func (s *ShowcaseSuite) TestDeleteDuringLoadDoesNotLeaveStaleCache() {
	s.addProject("one", portfolio.CategoryBackend, false)
	all, err := s.projects.List(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	doomed := all[0].ID

	repo := &racingRepo{Repository: s.projects}
	repo.afterLoad = func() {
		s.Require().NoError(s.projects.Delete(s.ctx, doomed))
		s.invalidator.Invalidate(s.ctx, KeyProjects)
	}
	uc := NewShowcaseUseCase(staticAccounts{memory.NewAccountRepo()}, s.skills, repo, s.cache, time.Minute, "", logger.NewNop())

	raced, err := uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Len(raced, 1)
	s.False(s.mr.Exists("portfolio:cache:" + KeyProjects))

	after, err := uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Empty(after)
	s.True(s.mr.Exists("portfolio:cache:" + KeyProjects))
}

func (s *ShowcaseSuite) TestProjectFiltersApplyToCachedList() {
	s.addProject("one", portfolio.CategoryBackend, false)
	s.addProject("two", portfolio.CategoryFrontend, true)

	featured := true
	got, err := s.uc.ListProjects(s.ctx, portfolio.Filter{Featured: &featured})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("two", got[0].Title)
}

func (s *ShowcaseSuite) TestAccountIsStableAcrossReads() {
	a, err := s.uc.GetAccount(s.ctx)
	s.Require().NoError(err)
	s.invalidator.Invalidate(s.ctx, KeyAccount)

	b, err := s.uc.GetAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal(a.ID, b.ID)
}

func (s *ShowcaseSuite) TestRedisOutageFallsBackToStore() {
	s.addProject("one", portfolio.CategoryBackend, false)
	s.mr.SetError("ERR backend down")

	got, err := s.uc.ListProjects(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *ShowcaseSuite) TestFeed() {
	s.addProject("one", portfolio.CategoryBackend, false)
	s.addProject("two", portfolio.CategoryAIML, false)

	feed, err := s.uc.Feed(s.ctx)
	s.Require().NoError(err)
	s.Equal("Ada - Projects", feed.Title)
	s.Equal("https://me.dev", feed.Link.Href)
	s.Require().Len(feed.Items, 2)
	s.Equal("two", feed.Items[0].Title)

	rss, err := feed.ToRss()
	s.Require().NoError(err)
	s.True(strings.Contains(rss, "<title>one</title>"))
}
