package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkov/microblog/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration-valued settings are expressed as integers (minutes or
// seconds) and converted into time.Duration when copied into Config.
type JsonConfig struct {
	EndpointAddrHTTP       string `json:"endpoint_addr_http"`
	DatabaseDSN            string `json:"database_dsn"`
	JWTSecret              string `json:"jwt_secret"`
	JWTIssuer              string `json:"jwt_issuer"`
	JWTAudience            string `json:"jwt_audience"`
	JWTExpMinutes          int    `json:"jwt_exp_minutes"`
	CORSAllowedOrigins     string `json:"cors_allowed_origins"`
	RateLimitRequests      int    `json:"rate_limit_requests"`
	RateLimitWindowSeconds int    `json:"rate_limit_window_seconds"`
	AdminEmail             string `json:"admin_email"`
	AdminUserName          string `json:"admin_username"`
	AdminPassword          string `json:"admin_password"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. Unset JSON fields leave the current
// Config values untouched. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.JWTIssuer != "" {
		config.JWTIssuer = c.JWTIssuer
	}
	if c.JWTAudience != "" {
		config.JWTAudience = c.JWTAudience
	}
	if c.JWTExpMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.JWTExpMinutes) * time.Minute
	}
	if c.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.RateLimitRequests > 0 {
		config.RateLimitRequests = c.RateLimitRequests
	}
	if c.RateLimitWindowSeconds > 0 {
		config.RateLimitWindow = time.Duration(c.RateLimitWindowSeconds) * time.Second
	}
	if c.AdminEmail != "" {
		config.AdminEmail = c.AdminEmail
	}
	if c.AdminUserName != "" {
		config.AdminUserName = c.AdminUserName
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
}
