package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "salesdesk-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "Idempotency-Key")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Admin.Email)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("LOG_LEVEL", "debug")
	v.Set("DB_SLOW_THRESHOLD_MS", 50)
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	v.Set("ADMIN_EMAIL", "admin@example.com")

	cfg := fromViper(v)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
