package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ontwatch/internal/usecase/outage"
	"ontwatch/pkg/utils"
)

type OutageHandler struct {
	service *outage.Service
}

func NewOutageHandler(service *outage.Service) *OutageHandler {
	return &OutageHandler{service: service}
}

func (h *OutageHandler) RegisterRoutes(router *gin.RouterGroup) {
	outages := router.Group("/outages")
	{
		outages.GET("", h.ListOutages)
		outages.GET("/summary", h.Summary)
		outages.POST("/clear-all", h.ClearAll)
	}
}

func (h *OutageHandler) ListOutages(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *OutageHandler) Summary(c *gin.Context) {
	summaries, err := h.service.Summarize(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *OutageHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All outage records cleared", nil)
}
