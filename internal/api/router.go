package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/config"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/handler"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/middleware"
)

// Handlers groups the HTTP handlers the router mounts
type Handlers struct {
	Journeys *handler.JourneyHandler
	Network  *handler.NetworkHandler

	// PlanLimiter throttles journey planning; nil disables it
	PlanLimiter *middleware.RateLimiter
}

// SetupRouter builds the gin engine
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Rank API is running",
		})
	})

	plan := []gin.HandlerFunc{h.Journeys.PlanJourney}
	if h.PlanLimiter != nil {
		plan = append([]gin.HandlerFunc{h.PlanLimiter.Middleware()}, plan...)
	}

	v1 := r.Group("/api/v1")
	{
		journeys := v1.Group("/journeys")
		{
			journeys.POST("", plan...)
			journeys.GET("", h.Journeys.GetJourneys)
			journeys.GET("/:journeyId", h.Journeys.GetJourney)
			journeys.POST("/:journeyId/transitions", h.Journeys.TransitionJourney)
			journeys.PATCH("/:journeyId/connections/:sequence", h.Journeys.UpdateWaitingTime)
		}

		network := v1.Group("/network")
		{
			network.POST("/refresh", h.Network.Refresh)
			network.GET("/stats", h.Network.GetStats)
		}

		v1.GET("/ranks/nearest", h.Network.GetNearestRank)
	}

	return r
}
