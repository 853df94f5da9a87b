package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("auth: token has no expiry claim")

// jwtParser parses without verifying: the SDK is a bearer of the token, not
// its issuer, so only the claims are of interest here.
var jwtParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpiresAt returns the exp claim of a JWT access token.
// Returns ErrNoExpiry when the claim is absent; malformed tokens return the
// parse error.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwtParser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// NeedsRefresh reports whether an access token expires within the given
// leeway. Tokens that cannot be parsed or carry no expiry report false: the
// server remains the authority, via its 401 response.
func NeedsRefresh(token string, leeway time.Duration) bool {
	if token == "" {
		return false
	}
	exp, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return time.Until(exp) < leeway
}
