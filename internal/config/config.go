// Package config loads runtime settings for the portfolio front end from the
// environment. A .env file is picked up by godotenv/autoload in main.
package config

import (
	"os"
	"time"
)

// Environment variable names
const (
	EnvPort          = "PORT"
	EnvAPIURL        = "API_URL"
	EnvAPIKey        = "ADMIN_API_KEY"
	EnvAPITimeout    = "API_TIMEOUT"
	EnvCacheTTL      = "CACHE_TTL"
	EnvAdminEmail    = "ADMIN_EMAIL"
	EnvAdminPassword = "ADMIN_PASSWORD"
	EnvContactEmail  = "CONTACT_EMAIL"
	EnvVisitsDB      = "VISITS_DB"
	EnvSMTPHost      = "SMTP_HOST"
	EnvSMTPPort      = "SMTP_PORT"
	EnvSMTPUser      = "SMTP_USER"
	EnvSMTPPass      = "SMTP_PASS"
	EnvToEmail       = "TO_EMAIL"
)

// Config holds all application configuration
type Config struct {
	Port string

	// External CRUD API
	APIURL     string
	APIKey     string // fallback when the admin has not entered one
	APITimeout time.Duration
	CacheTTL   time.Duration

	// Admin gate
	AdminEmail    string
	AdminPassword string

	// Public contact address shown on the contact page
	ContactEmail string

	// VisitsDB is the sqlite file for visitor metrics; empty disables tracking
	VisitsDB string

	SMTP SMTP
}

// SMTP holds outbound mail settings for inquiry notifications
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Enabled reports whether enough settings are present to send mail
func (s SMTP) Enabled() bool {
	return s.User != "" && s.Pass != "" && s.To != ""
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetDuration parses a duration variable, returning fallback when unset or invalid
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// nonEmpty treats an empty value the same as an unset one
func nonEmpty(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:          nonEmpty(EnvPort, "8080"),
		APIURL:        nonEmpty(EnvAPIURL, "http://localhost:8000"),
		APIKey:        GetEnv(EnvAPIKey, ""),
		APITimeout:    GetDuration(EnvAPITimeout, 30*time.Second),
		CacheTTL:      GetDuration(EnvCacheTTL, 30*time.Second),
		AdminEmail:    nonEmpty(EnvAdminEmail, "admin@example.com"),
		AdminPassword: nonEmpty(EnvAdminPassword, "shipfast"),
		ContactEmail:  nonEmpty(EnvContactEmail, "hello@example.com"),
		// VISITS_DB= (set but empty) turns tracking off
		VisitsDB: GetEnv(EnvVisitsDB, "visits.db"),
		SMTP: SMTP{
			Host: nonEmpty(EnvSMTPHost, "smtp.gmail.com"),
			Port: nonEmpty(EnvSMTPPort, "587"),
			User: GetEnv(EnvSMTPUser, ""),
			Pass: GetEnv(EnvSMTPPass, ""),
			To:   GetEnv(EnvToEmail, ""),
		},
	}
}
