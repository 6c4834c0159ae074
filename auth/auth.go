// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"github.com/danielhkuo/pollbooth/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("empty signing secret")
)

// argon2id parameters for poll password digests
const (
	digestTime    = 1
	digestMemory  = 64 * 1024
	digestThreads = 4
	digestKeyLen  = 32
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// DigestPassword returns the hex argon2id digest of password salted with pepper.
// The digest is deterministic so two digests can be compared for equality.
func DigestPassword(password, pepper string) string {
	key := argon2.IDKey([]byte(password), []byte(pepper), digestTime, digestMemory, digestThreads, digestKeyLen)
	return hex.EncodeToString(key)
}

// MatchPassword reports whether password digests to the stored digest.
// An empty stored digest never matches.
func MatchPassword(password, digest, pepper string) bool {
	if digest == "" {
		return false
	}
	candidate := DigestPassword(password, pepper)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// SessionClaims are carried by session tokens minted by the account service
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string      `json:"uid"`
	Role   models.Role `json:"role,omitempty"`
	Admin  bool        `json:"adm,omitempty"`
}

// IssueSessionToken signs an HS256 session token for the identity
func IssueSessionToken(id models.Identity, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: id.UserID,
		Role:   id.Role,
		Admin:  id.Admin,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ParseSessionToken validates a session token and returns the caller identity
func ParseSessionToken(tokenString string, secret []byte) (models.Identity, error) {
	if len(secret) == 0 {
		return models.Identity{}, ErrEmptySecret
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	role := claims.Role
	if role == "" && !claims.Admin {
		role = models.RoleMember
	}

	return models.Identity{
		UserID: claims.UserID,
		Role:   role,
		Admin:  claims.Admin,
	}, nil
}
