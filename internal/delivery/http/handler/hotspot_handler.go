package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ontwatch/internal/collector"
	"ontwatch/pkg/utils"
)

// HotspotHandler queries the access controller live, bypassing the
// occupancy log, for the "who is on right now" view.
type HotspotHandler struct {
	collector collector.Collector
}

func NewHotspotHandler(coll collector.Collector) *HotspotHandler {
	return &HotspotHandler{collector: coll}
}

func (h *HotspotHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/hotspot/active-users", h.GetActiveUsers)
}

type activeUser struct {
	Address string `json:"address"`
	MAC     string `json:"mac"`
}

func (h *HotspotHandler) GetActiveUsers(c *gin.Context) {
	sessions, err := h.collector.FetchActiveSessions(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, err.Error())
		return
	}

	users := make([]activeUser, 0, len(sessions))
	for _, sess := range sessions {
		users = append(users, activeUser{Address: sess.Address, MAC: sess.MAC})
	}

	c.JSON(http.StatusOK, users)
}
