package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "ontwatch/internal/domain/occupancy"
	"ontwatch/internal/usecase/occupancy"
	"ontwatch/pkg/utils"
)

type OccupancyHandler struct {
	service *occupancy.Service
}

func NewOccupancyHandler(service *occupancy.Service) *OccupancyHandler {
	return &OccupancyHandler{service: service}
}

func (h *OccupancyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/history", h.GetHistory)
	router.POST("/record-history", h.RecordHistory)
	router.POST("/log-active-users", h.LogActiveUsers)
}

func (h *OccupancyHandler) GetHistory(c *gin.Context) {
	points, err := h.service.History(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, points)
}

type recordHistoryRequest struct {
	Users *int `json:"users" binding:"required"`
}

func (h *OccupancyHandler) RecordHistory(c *gin.Context) {
	var req recordHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "User count not provided")
		return
	}

	point, err := h.service.RecordHistory(c.Request.Context(), *req.Users)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History point recorded", point)
}

type logActiveUsersRequest struct {
	Sessions []domain.Session `json:"sessions" binding:"required"`
}

func (h *OccupancyHandler) LogActiveUsers(c *gin.Context) {
	var req logActiveUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid data format")
		return
	}

	entry, err := h.service.LogSessions(c.Request.Context(), req.Sessions)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK,
		fmt.Sprintf("Logged %d sessions", len(entry.Sessions)), nil)
}
