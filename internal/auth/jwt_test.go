package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefhub-backend/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	actor := models.ChatUser{
		ID:     "rescue1",
		Name:   "Rescue Team Alpha",
		Email:  "alpha@example.com",
		Role:   models.RoleRescueTeam,
		TeamID: "rescue1",
	}

	token, err := NewAccessToken(actor, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewAccessToken(models.ChatUser{ID: "u1", Role: models.RoleUser}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := NewAccessToken(models.ChatUser{ID: "u1", Role: models.RoleUser}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_MissingIdentity(t *testing.T) {
	// A structurally valid token without a user id must not resolve to an
	// actor.
	token, err := NewAccessToken(models.ChatUser{Role: models.RoleUser}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}
