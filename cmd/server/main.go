package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/api"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/config"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/database"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/handler"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/middleware"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/repository"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := database.Open(database.Config{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		URL:    cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	if err := database.NewMigrationManager(db, cfg.MigrationsPath).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	rankRepo := repository.NewRankRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	journeyRepo := repository.NewJourneyRepository(db)

	networkService := service.NewNetworkService(rankRepo, routeRepo)
	journeyService := service.NewJourneyService(journeyRepo, rankRepo, networkService, service.PlanningConfig{
		MaxHops:               cfg.MaxHops,
		OptimizeFor:           cfg.OptimizeFor,
		TransferBufferMinutes: cfg.TransferBufferMinutes,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := networkService.Refresh(ctx); err != nil {
		log.Fatal("Failed to build network graph: ", err)
	}
	go networkService.Run(ctx, cfg.GraphRefreshInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	router := api.SetupRouter(cfg, api.Handlers{
		Journeys:    handler.NewJourneyHandler(journeyService),
		Network:     handler.NewNetworkHandler(networkService),
		PlanLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}
