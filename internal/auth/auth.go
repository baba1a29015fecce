// Package auth provides password hashing and session token handling.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("the email or password is incorrect")
	ErrNoToken            = errors.New("you need to be authenticated for this endpoint. Send a Bearer token with your request")
	ErrInvalidToken       = errors.New("the session token is invalid or expired. Please log in again")
	ErrNotConfigured      = errors.New("the token signing key is not configured")
)

var (
	secret        []byte
	tokenLifetime = 24 * time.Hour
	bcryptCost    = bcrypt.DefaultCost
)

// Configure sets the signing key, token lifetime and bcrypt work factor.
// It must be called once at startup before tokens are issued or verified.
func Configure(signingSecret string, lifetime time.Duration, cost int) {
	secret = []byte(signingSecret)

	if lifetime > 0 {
		tokenLifetime = lifetime
	}

	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		bcryptCost = cost
	}
}

// Claims is the JWT payload for session tokens. The user ID is carried
// in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// HashPassword hashes a cleartext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword verifies a cleartext password against a stored hash.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return ErrInvalidCredentials
	}

	return nil
}

// CreateToken issues a signed session token for the user.
func CreateToken(userID uuid.UUID) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, ErrNotConfigured
	}

	now := time.Now()
	expiresAt := now.Add(tokenLifetime)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ParseToken verifies a session token and returns the user ID it was
// issued for.
func ParseToken(tokenString string) (uuid.UUID, error) {
	if len(secret) == 0 {
		return uuid.Nil, ErrNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
