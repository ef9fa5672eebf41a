package config

import (
	"testing"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "ROUTING_MAX_HOPS", "ROUTING_OPTIMIZE_FOR", "GRAPH_REFRESH_INTERVAL", "CORS_ALLOWED_ORIGINS", "TRANSFER_BUFFER_MINUTES"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != ":8080" || cfg.DBDriver != "sqlite" {
		t.Errorf("port=%q driver=%q", cfg.Port, cfg.DBDriver)
	}
	if cfg.MaxHops != models.DefaultMaxHops || cfg.OptimizeFor != models.OptimizeFare {
		t.Errorf("routing defaults = %d/%s", cfg.MaxHops, cfg.OptimizeFor)
	}
	if cfg.GraphRefreshInterval != 5*time.Minute {
		t.Errorf("refresh interval = %v", cfg.GraphRefreshInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("cors origins = %v", cfg.CORSAllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROUTING_MAX_HOPS", "2")
	t.Setenv("ROUTING_OPTIMIZE_FOR", "duration")
	t.Setenv("TRANSFER_BUFFER_MINUTES", "2.5")
	t.Setenv("GRAPH_REFRESH_INTERVAL", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	cfg := Load()

	if cfg.MaxHops != 2 || cfg.OptimizeFor != models.OptimizeDuration || cfg.TransferBufferMinutes != 2.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.GraphRefreshInterval != 0 {
		t.Errorf("refresh interval = %v, want disabled", cfg.GraphRefreshInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestValidateRejectsNegativeTransferBuffer(t *testing.T) {
	t.Setenv("TRANSFER_BUFFER_MINUTES", "-3")
	cfg := Load()

	if cfg.TransferBufferMinutes != -3 {
		t.Fatalf("buffer = %v, want -3", cfg.TransferBufferMinutes)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("negative transfer buffer should fail validation")
	}

	cfg.TransferBufferMinutes = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero buffer should validate: %v", err)
	}
}

func TestLoadBadValues(t *testing.T) {
	t.Setenv("ROUTING_MAX_HOPS", "many")
	t.Setenv("ROUTING_OPTIMIZE_FOR", "speed")
	cfg := Load()

	if cfg.MaxHops != models.DefaultMaxHops {
		t.Errorf("unparsable int should fall back, got %d", cfg.MaxHops)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown optimize_for should fail validation")
	}
}
