package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/config"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/database"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/handler"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/middleware"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/repository"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.NewMigrationManager(db, "").RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	ranks := repository.NewRankRepository(db)
	routes := repository.NewRouteRepository(db)
	for i := int64(1); i <= 4; i++ {
		r := models.Rank{ID: i, Name: "rank", Latitude: -26.2, Longitude: 28 + float64(i)/100, IsActive: true}
		if err := ranks.Create(ctx, &r); err != nil {
			t.Fatalf("create rank: %v", err)
		}
	}
	for _, r := range []models.Route{
		{ID: 10, OriginRankID: 1, DestinationRankID: 2, Fare: 10, DurationMinutes: 20, DistanceKm: 4, IsActive: true},
		{ID: 11, OriginRankID: 2, DestinationRankID: 3, Fare: 15, DurationMinutes: 25, DistanceKm: 6, IsActive: true},
	} {
		r := r
		if err := routes.Create(ctx, &r); err != nil {
			t.Fatalf("create route: %v", err)
		}
	}

	network := service.NewNetworkService(ranks, routes)
	journeys := service.NewJourneyService(repository.NewJourneyRepository(db), ranks, network, service.PlanningConfig{})
	limiter := middleware.NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)

	cfg := &config.Config{CORSAllowedOrigins: []string{"*"}}
	r := SetupRouter(cfg, Handlers{
		Journeys:    handler.NewJourneyHandler(journeys),
		Network:     handler.NewNetworkHandler(network),
		PlanLimiter: limiter,
	})

	// Publish the seeded graph through the API itself
	if w := do(t, r, http.MethodPost, "/api/v1/network/refresh", nil); w.Code != http.StatusOK {
		t.Fatalf("refresh returned %d: %s", w.Code, w.Body.String())
	}
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, 0)
	if w := do(t, r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}

func TestJourneyLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(t, r, http.MethodPost, "/api/v1/journeys", gin.H{
		"user_id": "user-1", "origin_rank_id": 1, "destination_rank_id": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("plan = %d: %s", w.Code, w.Body.String())
	}
	var j models.Journey
	decode(t, w, &j)
	if j.JourneyType != models.JourneyTypeConnected || j.TotalFare != 25 || len(j.Connections) != 2 {
		t.Errorf("planned journey = %+v", j)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	w = do(t, r, http.MethodGet, "/api/v1/journeys/"+j.JourneyID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}

	w = do(t, r, http.MethodPatch, "/api/v1/journeys/"+j.JourneyID+"/connections/1", gin.H{"waiting_time_minutes": 4})
	if w.Code != http.StatusOK {
		t.Fatalf("waiting time = %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &j)
	if j.TotalDurationMinutes != 49 {
		t.Errorf("duration = %.1f, want 49", j.TotalDurationMinutes)
	}

	for _, ev := range []string{"start", "complete"} {
		w = do(t, r, http.MethodPost, "/api/v1/journeys/"+j.JourneyID+"/transitions", gin.H{"event": ev})
		if w.Code != http.StatusOK {
			t.Fatalf("%s = %d: %s", ev, w.Code, w.Body.String())
		}
	}

	w = do(t, r, http.MethodPost, "/api/v1/journeys/"+j.JourneyID+"/transitions", gin.H{"event": "rate", "rating": 5, "feedback": "smooth"})
	if w.Code != http.StatusOK {
		t.Fatalf("rate = %d: %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/v1/journeys/"+j.JourneyID+"/transitions", gin.H{"event": "rate", "rating": 3})
	if w.Code != http.StatusConflict {
		t.Errorf("second rating = %d, want 409", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/v1/journeys/"+j.JourneyID+"/transitions", gin.H{"event": "start"})
	if w.Code != http.StatusConflict {
		t.Errorf("start after completion = %d, want 409", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/v1/journeys?userId=user-1&status=completed", nil)
	var page models.JourneysResponse
	decode(t, w, &page)
	if w.Code != http.StatusOK || page.Total != 1 {
		t.Errorf("list = %d total=%d", w.Code, page.Total)
	}
}

func TestPlanErrorsOverHTTP(t *testing.T) {
	r := newTestRouter(t, 0)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing user", gin.H{"origin_rank_id": 1, "destination_rank_id": 3}, http.StatusBadRequest},
		{"unknown rank", gin.H{"user_id": "u", "origin_rank_id": 1, "destination_rank_id": 42}, http.StatusBadRequest},
		{"bad optimize", gin.H{"user_id": "u", "origin_rank_id": 1, "destination_rank_id": 3, "constraints": gin.H{"optimize_for": "vibes"}}, http.StatusBadRequest},
		{"unreachable", gin.H{"user_id": "u", "origin_rank_id": 1, "destination_rank_id": 4}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPost, "/api/v1/journeys", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	if w := do(t, r, http.MethodGet, "/api/v1/journeys/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing journey = %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodPatch, "/api/v1/journeys/nope/connections/x", gin.H{"waiting_time_minutes": 1}); w.Code != http.StatusBadRequest {
		t.Errorf("bad sequence = %d, want 400", w.Code)
	}
}

func TestPlanIsRateLimited(t *testing.T) {
	r := newTestRouter(t, 1)
	body := gin.H{"user_id": "u", "origin_rank_id": 1, "destination_rank_id": 3}

	if w := do(t, r, http.MethodPost, "/api/v1/journeys", body); w.Code != http.StatusCreated {
		t.Fatalf("first plan = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/journeys", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("second plan = %d, want 429", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/network/stats", nil); w.Code != http.StatusOK {
		t.Errorf("other endpoints should not be limited, got %d", w.Code)
	}
}

func TestNetworkEndpoints(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(t, r, http.MethodGet, "/api/v1/network/stats", nil)
	var stats service.NetworkStats
	decode(t, w, &stats)
	if stats.Ranks != 4 || stats.Edges != 4 {
		t.Errorf("stats = %+v", stats)
	}

	w = do(t, r, http.MethodGet, "/api/v1/ranks/nearest?lat=-26.2&lon=28.011", nil)
	var near service.NearestRank
	decode(t, w, &near)
	if w.Code != http.StatusOK || near.Rank.ID != 1 {
		t.Errorf("nearest = %d rank %d", w.Code, near.Rank.ID)
	}

	if w := do(t, r, http.MethodGet, "/api/v1/ranks/nearest?lat=-26.2", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing lon = %d, want 400", w.Code)
	}
}

func TestNearestRankAcceptsZeroCoordinates(t *testing.T) {
	r := newTestRouter(t, 0)

	for _, q := range []string{"lat=0&lon=28", "lat=-26.2&lon=0", "lat=0&lon=0"} {
		w := do(t, r, http.MethodGet, "/api/v1/ranks/nearest?"+q, nil)
		var near service.NearestRank
		decode(t, w, &near)
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d: %s", q, w.Code, w.Body.String())
			continue
		}
		// every seeded rank sits at -26.2; rank 1 is the westernmost
		if near.Rank.ID != 1 {
			t.Errorf("%s nearest = %d, want 1", q, near.Rank.ID)
		}
	}
}
