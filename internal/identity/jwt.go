package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-builder/internal/config"
)

// Claims carries the identity fields of a provider token.
// The user id is read from user_id, falling back to sub.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims to an Identity
func (c *Claims) Identity() Identity {
	uid := c.UserID
	if uid == "" {
		uid = c.Subject
	}
	return Identity{UserID: uid, Email: c.Email, DisplayName: c.Name}
}

// JWTVerifier validates HS256 identity tokens and can issue them for tooling and tests
type JWTVerifier struct {
	config *config.JWTConfig
}

// NewJWTVerifier creates a verifier with the given configuration
func NewJWTVerifier(cfg *config.JWTConfig) *JWTVerifier {
	return &JWTVerifier{config: cfg}
}

// Issue signs a token for id
func (v *JWTVerifier) Issue(id Identity) (string, error) {
	if id.IsGuest() {
		return "", fmt.Errorf("cannot issue a token for the guest identity")
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(v.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    v.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(v.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies tokenString and returns the identity it carries
func (v *JWTVerifier) ValidateToken(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("token string is empty")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(v.config.Secret), nil
	}, opts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, fmt.Errorf("malformed token: %w", err)
		}
		return Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return Identity{}, fmt.Errorf("token is not valid")
	}

	id := claims.Identity()
	if id.IsGuest() {
		return Identity{}, fmt.Errorf("token carries no user id")
	}
	return id, nil
}
