package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("SHOP_JWT_SECRET", "test-secret")
	t.Setenv("SHOP_ADMIN_PASSWORD", "hunter2")
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "shopfront", cfg.App.Name)
	assert.Equal(t, 50, cfg.Broadcast.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Broadcast.BatchDelay)
	assert.Equal(t, 90*24*time.Hour, cfg.JWT.FeedbackExpiration)
	assert.Equal(t, 0.0, cfg.Invoice.GSTRate)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv("SHOP_JWT_SECRET", "")
	t.Setenv("SHOP_ADMIN_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_FeedbackSecretOrDefault(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "session"}}
	assert.Equal(t, "session", cfg.FeedbackSecretOrDefault())

	cfg.JWT.FeedbackSecret = "feedback"
	assert.Equal(t, "feedback", cfg.FeedbackSecretOrDefault())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
