package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-i", "issuer", "-u", "audience", "-t", "30", "-o", "http://a,http://b",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				JWTSecret:                   "secret",
				JWTIssuer:                   "issuer",
				JWTAudience:                 "audience",
				AccessTokenValidityDuration: 30 * time.Minute,
				CORSAllowedOrigins:          "http://a,http://b",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
