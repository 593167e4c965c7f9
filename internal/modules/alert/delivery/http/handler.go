package handler

import (
	"errors"
	"net/http"

	"anoa.com/lifesaver/internal/modules/alert/dto"
	alert "anoa.com/lifesaver/internal/modules/alert/service"
	"anoa.com/lifesaver/pkg/apperror"
	"anoa.com/lifesaver/pkg/response"
	pkgvalidator "anoa.com/lifesaver/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	service alert.AlertService
}

func NewAlertHandler(service alert.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req dto.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	created, notifications, err := h.service.CreateAlert(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperror.ErrFanout) && created != nil {
			// SOS recorded; contacts may not be informed. Still a 201,
			// with the fanout failure surfaced separately.
			c.JSON(http.StatusCreated, gin.H{
				"alert":         created,
				"notifications": []any{},
				"fanout_error":  err.Error(),
			})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"alert":         created,
		"notifications": notifications,
	})
}

func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.ListAlerts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}
