package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/pkg/response"
)

// NetworkHandler handles HTTP requests for the rank network
type NetworkHandler struct {
	service *service.NetworkService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(service *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: service}
}

// Refresh handles POST /api/v1/network/refresh
func (h *NetworkHandler) Refresh(c *gin.Context) {
	if _, err := h.service.Refresh(c.Request.Context()); err != nil {
		response.InternalError(c, "Failed to refresh network", err)
		return
	}

	response.Success(c, h.service.Stats())
}

// GetStats handles GET /api/v1/network/stats
func (h *NetworkHandler) GetStats(c *gin.Context) {
	response.Success(c, h.service.Stats())
}

// GetNearestRank handles GET /api/v1/ranks/nearest
func (h *NetworkHandler) GetNearestRank(c *gin.Context) {
	var filter models.RankFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	nearest, err := h.service.NearestRank(*filter.Lat, *filter.Lon)
	if err != nil {
		fail(c, "Failed to find nearest rank", err)
		return
	}

	response.Success(c, nearest)
}
