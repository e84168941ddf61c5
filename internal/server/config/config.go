// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the microblog server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - JWTSecret: HMAC secret for signing JWTs (HS256). Required.
//   - JWTIssuer / JWTAudience: claims checked on every token.
//   - AccessTokenValidityDuration: access token lifetime.
//   - CORSAllowedOrigins: comma-separated origin list; empty allows any origin.
//   - RateLimitRequests / RateLimitWindow: fixed-window per-IP request limit.
//   - AdminEmail / AdminUserName / AdminPassword: optional bootstrap admin
//     account seeded on first run.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	JWTSecret                   string
	JWTIssuer                   string
	JWTAudience                 string
	AccessTokenValidityDuration time.Duration
	CORSAllowedOrigins          string
	RateLimitRequests           int
	RateLimitWindow             time.Duration
	AdminEmail                  string
	AdminUserName               string
	AdminPassword               string
}

// LoadDefaults populates Config with development defaults. The JWT secret and
// database DSN have no defaults and must be supplied via JSON, env, or flags.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.JWTIssuer = "microblog"
	c.JWTAudience = "microblog-api"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RateLimitRequests = 100
	c.RateLimitWindow = 10 * time.Second
}

// Validate reports configuration failures that must prevent the process from
// serving traffic.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: missing JWT secret")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: missing database DSN")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
