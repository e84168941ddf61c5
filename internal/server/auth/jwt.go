// Package auth implements JWT issuance and verification for the microblog
// API. Tokens are HS256-signed and carry the user's identity plus role names.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/server/config"
	"github.com/avolkov/microblog/internal/server/models"
)

// Claims is the claim set carried by access tokens: the registered claims
// (sub, iss, aud, exp, nbf, iat) plus email, username, and one roles entry
// per role the user holds. Role order is not significant.
type Claims struct {
	jwt.RegisteredClaims
	Email      string   `json:"email"`
	UniqueName string   `json:"unique_name"`
	Roles      []string `json:"roles,omitempty"`
}

// ClockSkew is the tolerance applied to exp/nbf checks during verification.
const ClockSkew = 30 * time.Second

// TokenService issues and verifies access tokens against a fixed secret,
// issuer, and audience taken from configuration at startup.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	validity time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		validity: cfg.AccessTokenValidityDuration,
	}
}

// Issue signs a token for the given user and role set and returns the encoded
// token together with its expiry instant (UTC).
func (s *TokenService) Issue(user *models.User, roles []string) (string, time.Time, error) {
	now := time.Now().UTC()
	expires := now.Add(s.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:      user.Email,
		UniqueName: user.UserName,
		Roles:      roles,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expires, nil
}

// Parse verifies a token string and returns its claims. A token is valid iff
// the signature checks out against the configured secret, issuer and audience
// match exactly, and the current time is within [nbf, exp] allowing ClockSkew.
// Any failure yields common.ErrInvalidToken.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithLeeway(ClockSkew),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
