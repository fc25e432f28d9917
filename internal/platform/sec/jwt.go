// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password digests, JWT signing)
// from the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenProvider] interface.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window of an access token when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ConfigurationError reports a missing or invalid security setting.
//
// It is fatal for the issuing process: callers must stop instead of
// falling back to a default.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sec: invalid configuration %s: %s", e.Field, e.Reason)
}

// ErrInvalidToken is wrapped by every verification failure.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// Claim names follow the short forms most JWT consumers already map
// (nameid, unique_name, role), so tokens stay readable by other clients of the site.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"nameid"`
	Username string `json:"unique_name"`
	Role     string `json:"role"`
}

// TokenConfig carries the signing settings for a [TokenService].
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	TimeToLive time.Duration
}

// IssuedToken is a signed token together with its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService handles generation and verification of JWT tokens using HS512.
type TokenService struct {
	secret     []byte
	issuer     string
	audience   string
	timeToLive time.Duration
	now        func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for iat/exp and for expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService validates cfg and creates a new TokenService.
//
// It returns a [*ConfigurationError] if the secret, issuer or audience is empty.
func NewTokenService(cfg TokenConfig, options ...TokenOption) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, &ConfigurationError{Field: "JWT_SECRET", Reason: "signing secret is required"}
	}
	if cfg.Issuer == "" {
		return nil, &ConfigurationError{Field: "JWT_ISSUER", Reason: "issuer is required"}
	}
	if cfg.Audience == "" {
		return nil, &ConfigurationError{Field: "JWT_AUDIENCE", Reason: "audience is required"}
	}
	if cfg.TimeToLive < 0 {
		return nil, &ConfigurationError{Field: "JWT_TTL", Reason: "must not be negative"}
	}

	timeToLive := cfg.TimeToLive
	if timeToLive == 0 {
		timeToLive = DefaultTokenTTL
	}

	service := &TokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		timeToLive: timeToLive,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// TimeToLive reports the validity window applied to every issued token.
func (service *TokenService) TimeToLive() time.Duration {
	return service.timeToLive
}

// Issue creates a signed access token for a user and returns it with its expiry.
func (service *TokenService) Issue(userID, username string, level *AccessLevel) (*IssuedToken, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(service.timeToLive)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			NotBefore: jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   userID,
		Username: username,
		Role:     string(RoleFor(level)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return &IssuedToken{Value: signedToken, ExpiresAt: expiresAt}, nil
}

// IssueToken creates a signed access token string for a user.
func (service *TokenService) IssueToken(userID, username string, level *AccessLevel) (string, error) {
	issued, err := service.Issue(userID, username, level)
	if err != nil {
		return "", err
	}
	return issued.Value, nil
}

// VerifyToken checks the signature, issuer, audience and validity window of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}

	return claims, nil
}
