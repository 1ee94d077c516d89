package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfoliouc "github.com/khoahotran/portfolio-api/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const screenshotField = "projectScreenshot"

type PortfolioHandler struct {
	createUseCase  *portfoliouc.CreateItemUseCase
	updateUseCase  *portfoliouc.UpdateItemUseCase
	deleteUseCase  *portfoliouc.DeleteItemUseCase
	getUseCase     *portfoliouc.GetItemUseCase
	listUseCase    *portfoliouc.ListItemsUseCase
	maxUploadBytes int64
	logger         logger.Logger
}

func NewPortfolioHandler(
	createUC *portfoliouc.CreateItemUseCase,
	updateUC *portfoliouc.UpdateItemUseCase,
	deleteUC *portfoliouc.DeleteItemUseCase,
	getUC *portfoliouc.GetItemUseCase,
	listUC *portfoliouc.ListItemsUseCase,
	maxUploadBytes int64,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		createUseCase:  createUC,
		updateUseCase:  updateUC,
		deleteUseCase:  deleteUC,
		getUseCase:     getUC,
		listUseCase:    listUC,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (h *PortfolioHandler) List(c *gin.Context) {
	filter, err := parsePortfolioFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items, err := h.listUseCase.Execute(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]PortfolioItemResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, toPortfolioItemResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	id, err := parseID(c, "portfolio item")
	if err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPortfolioItemResponse(item))
}

// Create requires a multipart request carrying projectScreenshot.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req CreatePortfolioItemRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	image, err := readImage(c, screenshotField, h.maxUploadBytes, true)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.createUseCase.Execute(c.Request.Context(), portfoliouc.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
		Category:    portfolio.Category(req.Category),
		Featured:    req.Featured,
		Image:       image,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toPortfolioItemResponse(out.Item))
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	id, err := parseID(c, "portfolio item")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdatePortfolioItemRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	image, err := readImage(c, screenshotField, h.maxUploadBytes, false)
	if err != nil {
		_ = c.Error(err)
		return
	}

	in := portfoliouc.UpdateItemInput{
		ItemID:      id,
		Title:       req.Title,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
		Featured:    req.Featured,
		Image:       image,
	}
	if req.Category != nil {
		cat := portfolio.Category(*req.Category)
		in.Category = &cat
	}

	out, err := h.updateUseCase.Execute(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPortfolioItemResponse(out.Item))
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "portfolio item")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
