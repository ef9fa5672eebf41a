package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/journey"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/pkg/response"
)

// JourneyHandler handles HTTP requests for journeys
type JourneyHandler struct {
	service *service.JourneyService
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(service *service.JourneyService) *JourneyHandler {
	return &JourneyHandler{service: service}
}

// PlanJourney handles POST /api/v1/journeys
func (h *JourneyHandler) PlanJourney(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	j, err := h.service.PlanJourney(c.Request.Context(), req)
	if err != nil {
		fail(c, "Failed to plan journey", err)
		return
	}

	response.Created(c, j)
}

// GetJourneys handles GET /api/v1/journeys
func (h *JourneyHandler) GetJourneys(c *gin.Context) {
	var filter models.JourneyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.service.ListJourneys(c.Request.Context(), filter)
	if err != nil {
		fail(c, "Failed to get journeys", err)
		return
	}

	response.Success(c, resp)
}

// GetJourney handles GET /api/v1/journeys/:journeyId
func (h *JourneyHandler) GetJourney(c *gin.Context) {
	j, err := h.service.GetJourney(c.Request.Context(), c.Param("journeyId"))
	if err != nil {
		fail(c, "Failed to get journey", err)
		return
	}

	response.Success(c, j)
}

// TransitionJourney handles POST /api/v1/journeys/:journeyId/transitions
func (h *JourneyHandler) TransitionJourney(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	params := journey.TransitionParams{
		CancellationReason: req.CancellationReason,
		Rating:             req.Rating,
		Feedback:           req.Feedback,
	}
	j, err := h.service.TransitionJourney(c.Request.Context(), c.Param("journeyId"), req.Event, params, req.ExpectedStatus)
	if err != nil {
		fail(c, "Failed to apply transition", err)
		return
	}

	response.Success(c, j)
}

// UpdateWaitingTime handles PATCH /api/v1/journeys/:journeyId/connections/:sequence
func (h *JourneyHandler) UpdateWaitingTime(c *gin.Context) {
	seq, err := strconv.Atoi(c.Param("sequence"))
	if err != nil {
		response.BadRequest(c, "Invalid sequence", err)
		return
	}

	var req models.WaitingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	j, err := h.service.UpdateWaitingTime(c.Request.Context(), c.Param("journeyId"), seq, *req.WaitingTimeMinutes)
	if err != nil {
		fail(c, "Failed to update waiting time", err)
		return
	}

	response.Success(c, j)
}
