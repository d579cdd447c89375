package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{EnvPort, EnvAPIURL, EnvAPIKey, EnvAPITimeout, EnvCacheTTL, EnvAdminEmail, EnvAdminPassword, EnvSMTPUser, EnvSMTPPass, EnvToEmail} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, "shipfast", cfg.AdminPassword)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvAPIURL, "https://api.example.com/")
	t.Setenv(EnvAPITimeout, "5s")
	t.Setenv(EnvCacheTTL, "not-a-duration")
	t.Setenv(EnvVisitsDB, "")
	t.Setenv(EnvSMTPUser, "me@example.com")
	t.Setenv(EnvSMTPPass, "secret")
	t.Setenv(EnvToEmail, "inbox@example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.example.com/", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL, "invalid durations fall back")
	assert.Equal(t, "", cfg.VisitsDB, "an empty VISITS_DB disables tracking")
	assert.True(t, cfg.SMTP.Enabled())
}
