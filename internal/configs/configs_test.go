package configs

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ROOM_REAP_INTERVAL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.RedisURL != "" {
		t.Errorf("expected empty redis url, got %q", cfg.RedisURL)
	}
	if cfg.RoomReapInterval != 0 {
		t.Errorf("expected reaping disabled, got %s", cfg.RoomReapInterval)
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_URL", "redis://redis:6379")
	t.Setenv("ROOM_REAP_INTERVAL", "5m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.RedisURL != "redis://redis:6379" {
		t.Errorf("unexpected redis url: %q", cfg.RedisURL)
	}
	if cfg.RoomReapInterval != 5*time.Minute {
		t.Errorf("unexpected reap interval: %s", cfg.RoomReapInterval)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "abc"},
		{"privileged port", "PORT", "80"},
		{"port out of range", "PORT", "70000"},
		{"bad reap interval", "ROOM_REAP_INTERVAL", "sometimes"},
		{"negative reap interval", "ROOM_REAP_INTERVAL", "-1m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("ROOM_REAP_INTERVAL", "")
			t.Setenv(tc.key, tc.value)

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}
