package jwt

import (
	"testing"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "FOODGRAM")

	token, err := svc.GenerateTokenUser(42, time.Hour)
	require.NoError(t, err)

	id, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", "FOODGRAM")

	token, err := svc.GenerateTokenUser(42, -time.Minute)
	require.NoError(t, err)

	_, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenFromAnotherSecretOrIssuer(t *testing.T) {
	token, err := NewJWTService("other", "FOODGRAM").GenerateTokenUser(42, time.Hour)
	require.NoError(t, err)
	_, err = NewJWTService("secret", "FOODGRAM").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	token, err = NewJWTService("secret", "SOMEONE").GenerateTokenUser(42, time.Hour)
	require.NoError(t, err)
	_, err = NewJWTService("secret", "FOODGRAM").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = NewJWTService("secret", "FOODGRAM").GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
