package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// AuthE2ETestSuite runs against the database configured for the repo.
type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	s.dbPool, err = pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}

	appLogger := logger.NewZapLogger("development")
	userRepo := persistence.NewPostgresUserRepo(s.dbPool, appLogger)

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testUser = user.User{
		ID:           uuid.New(),
		Name:         "E2E Owner",
		Email:        "e2e_test@example.com",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Upsert(context.Background(), &s.testUser); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	revoker := memory.NewTokenRevoker()
	authHandler := NewAuthHandler(
		authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
		authUC.NewLogoutUseCase(revoker),
		authUC.NewCurrentUserUseCase(userRepo),
		appLogger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	authMiddleware := AuthMiddleware(jwtSvc, revoker, appLogger)
	users := router.Group("/api/users")
	{
		users.POST("/login", authHandler.Login)
		users.POST("/logout", authMiddleware, authHandler.Logout)
		users.GET("/me", authMiddleware, authHandler.Me)
	}

	s.Router = router
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {
	bodyBad, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": "wrongpassword"})
	reqBad := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewBuffer(bodyBad))
	reqBad.Header.Set("Content-Type", "application/json")

	rrBad := httptest.NewRecorder()
	s.Router.ServeHTTP(rrBad, reqBad)
	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	bodyGood, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": s.testPass})
	reqGood := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewBuffer(bodyGood))
	reqGood.Header.Set("Content-Type", "application/json")

	rrGood := httptest.NewRecorder()
	s.Router.ServeHTTP(rrGood, reqGood)
	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse LoginResponse
	_ = json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse.Token
	assert.NotEmpty(s.T(), accessToken)

	reqMe := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	reqMe.Header.Set("Authorization", "Bearer "+accessToken)
	rrMe := httptest.NewRecorder()
	s.Router.ServeHTTP(rrMe, reqMe)
	assert.Equal(s.T(), http.StatusOK, rrMe.Code)

	reqOut := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	reqOut.Header.Set("Authorization", "Bearer "+accessToken)
	rrOut := httptest.NewRecorder()
	s.Router.ServeHTTP(rrOut, reqOut)
	assert.Equal(s.T(), http.StatusNoContent, rrOut.Code)

	reqAfter := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	reqAfter.Header.Set("Authorization", "Bearer "+accessToken)
	rrAfter := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAfter, reqAfter)
	assert.Equal(s.T(), http.StatusUnauthorized, rrAfter.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)
	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
