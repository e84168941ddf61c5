package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.JWTIssuer, "microblog")
	assert.Equal(t, c.JWTAudience, "microblog-api")
	assert.Equal(t, c.AccessTokenValidityDuration, 60*time.Minute)
	assert.Equal(t, c.RateLimitRequests, 100)
	assert.Equal(t, c.RateLimitWindow, 10*time.Second)
	assert.Empty(t, c.JWTSecret)
	assert.Empty(t, c.DatabaseDSN)
}

func TestValidate_MissingSecret(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.DatabaseDSN = "postgres://localhost/microblog"

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestValidate_MissingDSN(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.JWTSecret = "k"

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database DSN")
}

func TestValidate_OK(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.JWTSecret = "k"
	c.DatabaseDSN = "postgres://localhost/microblog"

	require.NoError(t, c.Validate())
}
