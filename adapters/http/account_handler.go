package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/account"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type AccountHandler struct {
	accountUseCase *account.AccountUseCase
	maxUploadBytes int64
	logger         logger.Logger
}

func NewAccountHandler(uc *account.AccountUseCase, maxUploadBytes int64, log logger.Logger) *AccountHandler {
	return &AccountHandler{accountUseCase: uc, maxUploadBytes: maxUploadBytes, logger: log}
}

func (h *AccountHandler) Get(c *gin.Context) {
	acc, err := h.accountUseCase.ExecuteGet(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(acc))
}

// Update accepts JSON, or multipart form fields with an optional profileImage.
func (h *AccountHandler) Update(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	image, err := readImage(c, "profileImage", h.maxUploadBytes, false)
	if err != nil {
		_ = c.Error(err)
		return
	}

	acc, err := h.accountUseCase.ExecuteUpdate(c.Request.Context(), account.UpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Summary:      req.Summary,
		About:        req.About,
		Experience:   req.Experience,
		Project:      req.Project,
		Hackathon:    req.Hackathon,
		Certificate:  req.Certificate,
		Award:        req.Award,
		Technology:   req.Technology,
		ProfileImage: image,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(acc))
}
