package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestSessionRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := IssueSession(userID, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifySession(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifySessionWrongSecret(t *testing.T) {
	token, err := IssueSession(primitive.NewObjectID(), testSecret)
	require.NoError(t, err)

	_, err = VerifySession(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionGarbage(t *testing.T) {
	_, err := VerifySession("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   primitive.NewObjectID().Hex(),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * SessionDuration)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-SessionDuration)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifySession(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifySessionBadSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "not-an-object-id",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifySession(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
