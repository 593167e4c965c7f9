package handler

import (
	"net/http"

	"anoa.com/lifesaver/internal/modules/session/dto"
	session "anoa.com/lifesaver/internal/modules/session/service"
	"anoa.com/lifesaver/pkg/response"
	pkgvalidator "anoa.com/lifesaver/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service session.SessionService
}

func NewSessionHandler(service session.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CreateSession(req.Phone)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
