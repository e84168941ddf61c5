package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkov/microblog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-i string   JWT issuer
//	-u string   JWT audience
//	-t int      access token validity, minutes
//	-o string   CORS allowed origins (comma-separated)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other packages' flags. The
// duration flag is accepted as an integer in minutes and converted to a
// time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-u", "-t", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")
	fs.StringVar(&config.JWTIssuer, "i", config.JWTIssuer, "JWT issuer")
	fs.StringVar(&config.JWTAudience, "u", config.JWTAudience, "JWT audience")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS allowed origins (comma-separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
