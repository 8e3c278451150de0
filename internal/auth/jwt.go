package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reliefhub-backend/internal/models"
)

// CustomClaims carries the fully-resolved actor inside the token so that
// callers never reconstruct a role from partial data. What the token says
// is what the actor is.
type CustomClaims struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	TeamID string      `json:"team_id,omitempty"`
	Avatar string      `json:"avatar,omitempty"`
	Email  string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Actor rebuilds the ChatUser snapshot encoded in the claims.
func (c *CustomClaims) Actor() models.ChatUser {
	return models.ChatUser{
		ID:     c.UserID,
		Name:   c.Name,
		Email:  c.Email,
		Avatar: c.Avatar,
		Role:   c.Role,
		TeamID: c.TeamID,
	}
}

// NewAccessToken generates a signed JWT access token for the given actor.
func NewAccessToken(actor models.ChatUser, jwtSecret string, expiration time.Duration) (string, error) {
	claims := CustomClaims{
		UserID: actor.ID,
		Name:   actor.Name,
		Role:   actor.Role,
		TeamID: actor.TeamID,
		Avatar: actor.Avatar,
		Email:  actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "reliefhub-backend",
			Subject:   actor.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Printf("Error signing JWT token for UserID %s: %v", actor.ID, err)
		return "", err
	}

	return signedToken, nil
}

// ValidateToken parses and verifies a signed token and returns its claims.
// A token whose claims lack an identity is rejected even when the
// signature checks out.
func ValidateToken(tokenString, jwtSecret string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, errors.New("invalid token claims (missing identity)")
	}
	return claims, nil
}
