package handler

import (
	"net/http"

	"anoa.com/lifesaver/internal/modules/medical/dto"
	medical "anoa.com/lifesaver/internal/modules/medical/service"
	"anoa.com/lifesaver/pkg/response"
	pkgvalidator "anoa.com/lifesaver/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MedicalHandler struct {
	service medical.MedicalService
}

func NewMedicalHandler(service medical.MedicalService) *MedicalHandler {
	return &MedicalHandler{service: service}
}

func (h *MedicalHandler) CreateMedicalInfo(c *gin.Context) {
	var req dto.MedicalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	info, err := h.service.CreateMedicalInfo(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *MedicalHandler) GetAllMedicalInfo(c *gin.Context) {
	infos, err := h.service.GetAllMedicalInfo(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, infos)
}

func (h *MedicalHandler) GetMedicalInfoByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	info, err := h.service.GetMedicalInfoByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *MedicalHandler) UpdateMedicalInfo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.MedicalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	info, err := h.service.UpdateMedicalInfo(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *MedicalHandler) DeleteMedicalInfo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMedicalInfo(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "medical info deleted successfully"})
}

func (h *MedicalHandler) UploadAttachment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	attachment, err := h.service.UploadAttachment(c.Request.Context(), id, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

func (h *MedicalHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.MedicalInfoURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, false
	}

	return id, true
}
