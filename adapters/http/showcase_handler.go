package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// ShowcaseHandler serves the unauthenticated read side of the site.
type ShowcaseHandler struct {
	showcaseUseCase *showcase.ShowcaseUseCase
	logger          logger.Logger
}

func NewShowcaseHandler(uc *showcase.ShowcaseUseCase, log logger.Logger) *ShowcaseHandler {
	return &ShowcaseHandler{showcaseUseCase: uc, logger: log}
}

func (h *ShowcaseHandler) GetInfo(c *gin.Context) {
	acc, err := h.showcaseUseCase.GetAccount(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPublicAccountResponse(acc))
}

func (h *ShowcaseHandler) ListSkills(c *gin.Context) {
	sets, err := h.showcaseUseCase.ListSkills(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSkillSetResponses(sets))
}

func (h *ShowcaseHandler) ListProjects(c *gin.Context) {
	filter, err := parsePortfolioFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items, err := h.showcaseUseCase.ListProjects(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]PublicPortfolioItemResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, toPublicPortfolioItemResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShowcaseHandler) Feed(c *gin.Context) {
	feed, err := h.showcaseUseCase.Feed(c.Request.Context())
	if err != nil {
		_ = c.Error(apperror.NewInternal("failed to generate RSS feed", err))
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		_ = c.Error(apperror.NewInternal("failed to render RSS feed", err))
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func parsePortfolioFilter(c *gin.Context) (portfolio.Filter, error) {
	var filter portfolio.Filter

	if raw, ok := c.GetQuery("category"); ok && raw != "" {
		cat := portfolio.Category(raw)
		if !cat.Valid() {
			return filter, apperror.NewInvalidInput("category is not one of the allowed values", nil)
		}
		filter.Category = &cat
	}

	if raw, ok := c.GetQuery("featured"); ok && raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperror.NewInvalidInput("featured must be true or false", err)
		}
		filter.Featured = &featured
	}

	return filter, nil
}
