package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	messageuc "github.com/khoahotran/portfolio-api/internal/application/usecase/message"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type MessageHandler struct {
	messageUseCase *messageuc.MessageUseCase
	logger         logger.Logger
}

func NewMessageHandler(uc *messageuc.MessageUseCase, log logger.Logger) *MessageHandler {
	return &MessageHandler{messageUseCase: uc, logger: log}
}

// Submit is the public contact form endpoint.
func (h *MessageHandler) Submit(c *gin.Context) {
	var req SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	msg, err := h.messageUseCase.Submit(c.Request.Context(), messageuc.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, SubmitMessageResponse{
		Message: messageuc.Acknowledgement,
		Data:    toMessageResponse(msg),
	})
}

func (h *MessageHandler) List(c *gin.Context) {
	msgs, err := h.messageUseCase.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) SetRead(c *gin.Context) {
	id, err := parseID(c, "message")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req SetMessageReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	msg, err := h.messageUseCase.SetRead(c.Request.Context(), id, *req.IsRead)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "message")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.messageUseCase.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
