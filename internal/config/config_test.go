package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EVENT_BROKER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("LOCAL_DB_PATH", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/local.db", cfg.LocalDBPath)
	assert.Equal(t, "", cfg.EventBroker)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "*", cfg.CORSAllowedOrigin)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVENT_BROKER", " Kafka ")
	t.Setenv("EMAIL_SERVICE_URL", "http://localhost:3001/")
	t.Setenv("SESSION_TTL", "45m")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "kafka", cfg.EventBroker)
	assert.Equal(t, "http://localhost:3001", cfg.EmailServiceURL)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("X_TTL", "120")
	assert.Equal(t, 2*time.Minute, GetDuration("X_TTL", time.Hour))

	t.Setenv("X_TTL", "soon")
	assert.Equal(t, time.Hour, GetDuration("X_TTL", time.Hour))

	t.Setenv("X_TTL", "-5m")
	assert.Equal(t, time.Hour, GetDuration("X_TTL", time.Hour))
}
