package config

import (
	"testing"
	"time"
)

func TestNewConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := NewConfig(); err == nil {
		t.Fatal("NewConfig() error = nil, want missing JWT_SECRET error")
	}
}

func TestNewConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://phynetix.app, https://admin.phynetix.app")
	t.Setenv("LEADERBOARD_CACHE_TTL", "90s")
	t.Setenv("MULTI_CHOICE_WRONG_PENALTY", "1.5")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://admin.phynetix.app" {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Redis.LeaderboardTTL != 90*time.Second {
		t.Errorf("ttl = %v, want 90s", cfg.Redis.LeaderboardTTL)
	}
	if cfg.Grading.MultiChoiceWrongPenalty != 1.5 {
		t.Errorf("penalty = %v, want 1.5", cfg.Grading.MultiChoiceWrongPenalty)
	}
	if cfg.Grading.AdvancedVariant != "advanced" {
		t.Errorf("advanced variant = %q, want default %q", cfg.Grading.AdvancedVariant, "advanced")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: Database{Host: "db", Port: "5432", User: "u", Password: "p", Name: "phynetix", SSLMode: "require"}}
	want := "host=db port=5432 user=u password=p dbname=phynetix sslmode=require TimeZone=UTC"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DatabaseDSN() = %q, want %q", got, want)
	}
}
