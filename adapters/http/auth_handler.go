package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase       *auth.LoginUseCase
	logoutUseCase      *auth.LogoutUseCase
	currentUserUseCase *auth.CurrentUserUseCase
	logger             logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, logoutUC *auth.LogoutUseCase, currentUC *auth.CurrentUserUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase:       loginUC,
		logoutUseCase:      logoutUC,
		currentUserUseCase: currentUC,
		logger:             log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        output.AccessToken,
		ExpiresAt:    output.ExpiresAt,
		UserResponse: toUserResponse(output.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := getTokenFromGinContext(c)
	if !ok {
		_ = c.Error(apperror.NewTokenRejected("token id missing from context", nil))
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), jti, expiresAt); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		_ = c.Error(apperror.NewTokenRejected("user id missing from context", nil))
		return
	}

	u, err := h.currentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
