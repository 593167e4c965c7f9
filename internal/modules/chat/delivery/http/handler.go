package handler

import (
	"net/http"

	"anoa.com/lifesaver/internal/modules/chat/dto"
	chat "anoa.com/lifesaver/internal/modules/chat/service"
	"anoa.com/lifesaver/pkg/response"
	pkgvalidator "anoa.com/lifesaver/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service chat.ChatService
}

func NewChatHandler(service chat.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), c.ClientIP(), req.Message)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Response: reply})
}
