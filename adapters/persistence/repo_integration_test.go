package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	ctx         context.Context
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer

	accounts account.Repository
	skills   skill.Repository
	projects portfolio.Repository
	messages message.Repository
	users    user.Repository
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portfolio_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(s.ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	log := logger.NewNop()
	s.accounts = NewPostgresAccountRepo(pool, log)
	s.skills = NewPostgresSkillRepo(pool, log)
	s.projects = NewPostgresPortfolioRepo(pool, log)
	s.messages = NewPostgresMessageRepo(pool, log)
	s.users = NewPostgresUserRepo(pool, log)
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *RepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, `TRUNCATE account_info, skill_sets, portfolio_items, contact_messages, users`)
	s.Require().NoError(err)
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_Account_GetOrCreate_IsSingleton() {
	first, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "Default", Email: "me@example.com"})
	s.Require().NoError(err)
	second, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "Other", Email: "other@example.com"})
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("Default", second.Name)
	s.Equal(int64(1), second.Version)
}

func (s *RepoIntegrationTestSuite) Test_Account_EmailIsUnique() {
	_, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "Default", Email: "me@example.com"})
	s.Require().NoError(err)

	var unique bool
	err = s.dbPool.QueryRow(s.ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE tablename = 'account_info' AND indexdef ILIKE 'CREATE UNIQUE INDEX%(email)'
		)`).Scan(&unique)
	s.Require().NoError(err)
	s.True(unique)

	// same default email twice still resolves to the one row
	again, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "Dup", Email: "me@example.com"})
	s.Require().NoError(err)
	s.Equal("Default", again.Name)
}

func (s *RepoIntegrationTestSuite) Test_Account_Update_BumpsVersion() {
	a, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "Default", Email: "me@example.com"})
	s.Require().NoError(err)

	a.Name = "Ada"
	a.Counters.Project = 7
	s.Require().NoError(s.accounts.Update(s.ctx, a))
	s.Equal(int64(2), a.Version)

	reloaded, err := s.accounts.GetOrCreate(s.ctx, &account.Account{ID: uuid.New(), Name: "x", Email: "x@example.com"})
	s.Require().NoError(err)
	s.Equal("Ada", reloaded.Name)
	s.Equal(7, reloaded.Counters.Project)
}

func (s *RepoIntegrationTestSuite) Test_SkillSet_CRUD() {
	now := time.Now().UTC()
	set := &skill.SkillSet{
		ID:        uuid.New(),
		Category:  skill.CategoryLanguages,
		Skills:    []skill.Skill{{Name: "Go", Level: 90}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.skills.Save(s.ctx, set))

	set.Skills = append(set.Skills, skill.Skill{Name: "Rust", Level: 40})
	s.Require().NoError(s.skills.Update(s.ctx, set))

	found, err := s.skills.FindByID(s.ctx, set.ID)
	s.Require().NoError(err)
	s.Len(found.Skills, 2)

	s.Require().NoError(s.skills.Delete(s.ctx, set.ID))
	_, err = s.skills.FindByID(s.ctx, set.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	s.ErrorIs(s.skills.Delete(s.ctx, set.ID), apperror.ErrNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Portfolio_ListFilter() {
	now := time.Now().UTC()
	mk := func(title string, cat portfolio.Category, featured bool, offset time.Duration) *portfolio.Item {
		return &portfolio.Item{
			ID: uuid.New(), Title: title, Description: "d", GithubURL: "https://github.com/x",
			ImageURL: "https://img/" + title, ImagePublicID: "portfolio/projects/" + title,
			Category: cat, Featured: featured, CreatedAt: now.Add(offset), UpdatedAt: now.Add(offset),
		}
	}
	s.Require().NoError(s.projects.Save(s.ctx, mk("api", portfolio.CategoryBackend, true, 0)))
	s.Require().NoError(s.projects.Save(s.ctx, mk("spa", portfolio.CategoryFrontend, false, time.Second)))

	all, err := s.projects.List(s.ctx, portfolio.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("api", all[0].Title)

	featured := true
	onlyFeatured, err := s.projects.List(s.ctx, portfolio.Filter{Featured: &featured})
	s.Require().NoError(err)
	s.Require().Len(onlyFeatured, 1)
	s.Equal("api", onlyFeatured[0].Title)

	frontend := portfolio.CategoryFrontend
	onlyFrontend, err := s.projects.List(s.ctx, portfolio.Filter{Category: &frontend})
	s.Require().NoError(err)
	s.Require().Len(onlyFrontend, 1)
	s.Equal("spa", onlyFrontend[0].Title)
}

func (s *RepoIntegrationTestSuite) Test_Message_SetRead_And_Order() {
	now := time.Now().UTC()
	older := &message.Message{ID: uuid.New(), Name: "a", Email: "a@example.com", Subject: "s", Body: "b", CreatedAt: now, UpdatedAt: now}
	newer := &message.Message{ID: uuid.New(), Name: "b", Email: "b@example.com", Subject: "s", Body: "b", CreatedAt: now.Add(time.Minute), UpdatedAt: now.Add(time.Minute)}
	s.Require().NoError(s.messages.Save(s.ctx, older))
	s.Require().NoError(s.messages.Save(s.ctx, newer))

	list, err := s.messages.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(newer.ID, list[0].ID)

	updated, err := s.messages.SetRead(s.ctx, older.ID, true)
	s.Require().NoError(err)
	s.True(updated.IsRead)

	_, err = s.messages.SetRead(s.ctx, uuid.New(), true)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RepoIntegrationTestSuite) Test_User_Upsert_KeepsID() {
	u := &user.User{ID: uuid.New(), Name: "Owner", Email: "owner@example.com", PasswordHash: "h1", IsAdmin: true, CreatedAt: time.Now().UTC()}
	s.Require().NoError(s.users.Upsert(s.ctx, u))
	firstID := u.ID

	again := &user.User{ID: uuid.New(), Name: "Owner", Email: "owner@example.com", PasswordHash: "h2", IsAdmin: true, CreatedAt: time.Now().UTC()}
	s.Require().NoError(s.users.Upsert(s.ctx, again))
	s.Equal(firstID, again.ID)

	found, err := s.users.FindByEmail(s.ctx, "owner@example.com")
	s.Require().NoError(err)
	s.Equal("h2", found.PasswordHash)
}
