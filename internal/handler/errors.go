package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/journey"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/pkg/response"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, journey.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, journey.ErrNotFound), errors.Is(err, service.ErrEmptyNetwork):
		return http.StatusNotFound
	case errors.Is(err, journey.ErrInvalidTransition),
		errors.Is(err, journey.ErrAlreadyRated),
		errors.Is(err, journey.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, message string, err error) {
	response.Error(c, statusFor(err), message, err)
}
