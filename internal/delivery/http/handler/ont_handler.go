package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "ontwatch/internal/domain/ont"
	"ontwatch/internal/usecase/ont"
	"ontwatch/pkg/utils"
)

type ONTHandler struct {
	service *ont.Service
}

func NewONTHandler(service *ont.Service) *ONTHandler {
	return &ONTHandler{service: service}
}

func (h *ONTHandler) RegisterRoutes(router *gin.RouterGroup) {
	onts := router.Group("/onts")
	{
		onts.GET("", h.ListONTs)
		onts.POST("", h.CreateONT)
		onts.PUT("/:id", h.UpdateONT)
		onts.DELETE("/:id", h.DeleteONT)
	}
}

// ListONTs serves the full device collection verbatim; the map and
// dashboard pages consume it as-is.
func (h *ONTHandler) ListONTs(c *gin.Context) {
	onts, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, onts)
}

func (h *ONTHandler) CreateONT(c *gin.Context) {
	var req ont.CreateONTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "ONT created successfully", created)
}

func (h *ONTHandler) UpdateONT(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ONT ID")
		return
	}

	var req ont.UpdateONTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ONT updated successfully", updated)
}

func (h *ONTHandler) DeleteONT(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ONT ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ONT deleted successfully", nil)
}
