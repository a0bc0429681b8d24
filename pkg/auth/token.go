// Package auth holds the credential primitives: JWT issuing/verification
// and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
)

// Tokens issues and verifies the service's bearer credentials. The signing
// secret and both lifetimes are injected at construction; issuer and
// verifier share the same instance so they can never disagree.
//
// Access tokens carry the identity under the "username" claim; refresh
// tokens carry it under the registered "sub" claim. Same encoding, same
// secret, different lifetime and claim key.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// claims is the payload for both token kinds. Access tokens set Username,
// refresh tokens set RegisteredClaims.Subject.
type claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// AccessTTL exposes the access lifetime for the login response's expires_in.
func (t *Tokens) AccessTTL() time.Duration { return t.accessTTL }

// IssueAccess mints a signed access token for username expiring at
// now + accessTTL. Pure: no side effects, deterministic for fixed inputs.
func (t *Tokens) IssueAccess(username string, now time.Time) (string, error) {
	return t.sign(claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
}

// IssueRefresh mints a signed refresh token for username expiring at
// now + refreshTTL.
func (t *Tokens) IssueRefresh(username string, now time.Time) (string, error) {
	return t.sign(claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
}

func (t *Tokens) sign(c claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// VerifyAccess validates signature and expiry and returns the username from
// the access claim. Every failure mode collapses into one opaque
// invalid-credentials error; the distinguishing reason is log-only.
func (t *Tokens) VerifyAccess(token string, now time.Time) (string, error) {
	c, err := t.parse(token, now)
	if err != nil {
		return "", err
	}
	if c.Username == "" {
		return "", apperr.InvalidCredentials("missing username claim", nil)
	}
	return c.Username, nil
}

// VerifyRefresh validates signature and expiry and returns the username from
// the "sub" claim.
func (t *Tokens) VerifyRefresh(token string, now time.Time) (string, error) {
	c, err := t.parse(token, now)
	if err != nil {
		return "", err
	}
	if c.Subject == "" {
		return "", apperr.InvalidCredentials("missing sub claim", nil)
	}
	return c.Subject, nil
}

func (t *Tokens) parse(token string, now time.Time) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{},
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, apperr.InvalidCredentials(classify(err), err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, apperr.InvalidCredentials("invalid claims", nil)
	}
	return c, nil
}

// classify names the verification failure for logs. Never shown to callers.
func classify(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature mismatch"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing exp claim"
	default:
		return "unverifiable token"
	}
}
