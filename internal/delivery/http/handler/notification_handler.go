package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "ontwatch/internal/domain/notification"
	"ontwatch/internal/usecase/notification"
	appErrors "ontwatch/pkg/errors"
	"ontwatch/pkg/utils"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("", h.AppendNotification)
		notifications.POST("/mark-read/:id", h.MarkRead)
		notifications.POST("/clear-all", h.ClearAll)
		notifications.POST("/restore-backup", h.RestoreBackup)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *NotificationHandler) AppendNotification(c *gin.Context) {
	var req notification.AppendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Append(c.Request.Context(), &req)
	if err != nil {
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Notification added", entry)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications cleared", nil)
}

func (h *NotificationHandler) RestoreBackup(c *gin.Context) {
	count, err := h.service.RestoreLatestBackup(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoBackup) {
			c.JSON(http.StatusOK, utils.Response{
				Success: false,
				Message: "No backup available to restore",
			})
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK,
		fmt.Sprintf("Restored %d notifications from backup", count),
		gin.H{"count": count},
	)
}
