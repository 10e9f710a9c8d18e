package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ontwatch/internal/usecase/analytics"
	appErrors "ontwatch/pkg/errors"
	"ontwatch/pkg/utils"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics-data", h.GetAnalyticsData)
}

func (h *AnalyticsHandler) GetAnalyticsData(c *gin.Context) {
	monthFilter := strings.TrimSpace(c.Query("month"))

	payload, err := h.service.Compute(c.Request.Context(), monthFilter)
	if err != nil {
		switch {
		case errors.Is(err, appErrors.ErrInvalidMonthFilter):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, appErrors.ErrNoAnalyticsData):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, payload)
}
