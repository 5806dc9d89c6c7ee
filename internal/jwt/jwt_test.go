package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	j := New("test-secret", time.Minute)

	sessionID := uuid.NewString()
	ctx := context.Background()

	token, err := j.Generate(ctx, sessionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := j.GetSessionID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute) // already expired

	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := j.GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	got, err := j.GetSessionID(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWT_WrongSecret(t *testing.T) {
	ctx := context.Background()

	issuer := New("secret-one", time.Minute)
	token, err := issuer.Generate(ctx, uuid.NewString())
	assert.NoError(t, err)

	verifier := New("secret-two", time.Minute)
	got, err := verifier.GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWT_MissingSessionID(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "")
	assert.NoError(t, err)

	got, err := j.GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, got)
}
