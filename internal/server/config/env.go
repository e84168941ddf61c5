package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset variables
// leave the current values untouched.
//
// Recognized variables:
//
//	ADDRESS                    HTTP bind address
//	DATABASE_DSN               PostgreSQL DSN
//	JWT_SECRET                 JWT HMAC secret
//	JWT_ISSUER                 token issuer claim
//	JWT_AUDIENCE               token audience claim
//	JWT_EXP_MINUTES            access token lifetime, minutes
//	CORS_ALLOWED_ORIGINS       comma-separated origin list
//	RATE_LIMIT_REQUESTS        fixed-window request limit
//	RATE_LIMIT_WINDOW_SECONDS  fixed-window length, seconds
//	ADMIN_EMAIL                bootstrap admin email
//	ADMIN_USERNAME             bootstrap admin username (defaults to email)
//	ADMIN_PASSWORD             bootstrap admin password
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		config.JWTIssuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		config.JWTAudience = v
	}
	if v := os.Getenv("JWT_EXP_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.AccessTokenValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = v
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.RateLimitRequests = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.RateLimitWindow = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		config.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		config.AdminUserName = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		config.AdminPassword = v
	}
}
