package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist-service/internal/entity"
	"todolist-service/internal/repository"
)

func testUserStore(t *testing.T, disabled bool) *repository.StaticUserStore {
	t.Helper()

	hash, err := HashPassword("musah12345")
	require.NoError(t, err)

	return repository.NewStaticUserStore(entity.UserCredential{
		UserProfile: entity.UserProfile{
			Username: "musah",
			Email:    "amusahcongo@gmail.com",
			FullName: "congo musah",
			Disabled: disabled,
		},
		HashedPassword: hash,
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret", hash))
	assert.False(t, VerifyPassword("wrong", hash))

	// Salted: hashing the same input twice must not produce the same output,
	// and verification is the only equality path.
	other, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
	assert.True(t, VerifyPassword("secret", other))
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(testUserStore(t, false), []byte("test-signing-key"))
	ctx := context.Background()

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "musah12345")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "musah", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("matching pair", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "musah", "musah12345")
		require.NoError(t, err)
		assert.Equal(t, "musah", user.Username)
	})
}

func TestResolveCurrentUser(t *testing.T) {
	svc := NewAuthService(testUserStore(t, false), []byte("test-signing-key"))
	ctx := context.Background()

	token, err := svc.CreateAccessToken("musah", LoginAccessTokenTTL)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeBearer, token.TokenType)

	profile, err := svc.ResolveCurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "musah", profile.Username)
	assert.Equal(t, "amusahcongo@gmail.com", profile.Email)
}

func TestResolveCurrentUserRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(testUserStore(t, false), []byte("test-signing-key"))

	// A zero ttl puts the expiry at issue time, so the token is dead on
	// arrival.
	token, err := svc.CreateAccessToken("musah", 0)
	require.NoError(t, err)

	_, err = svc.ResolveCurrentUser(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveCurrentUserRejectsBadTokens(t *testing.T) {
	store := testUserStore(t, false)
	svc := NewAuthService(store, []byte("test-signing-key"))
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ResolveCurrentUser(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged, err := NewAuthService(store, []byte("other-key")).CreateAccessToken("musah", time.Minute)
		require.NoError(t, err)

		_, err = svc.ResolveCurrentUser(ctx, forged.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := svc.CreateAccessToken("", time.Minute)
		require.NoError(t, err)

		_, err = svc.ResolveCurrentUser(ctx, token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("subject not in store", func(t *testing.T) {
		token, err := svc.CreateAccessToken("ghost", time.Minute)
		require.NoError(t, err)

		_, err = svc.ResolveCurrentUser(ctx, token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRequireActiveUser(t *testing.T) {
	svc := NewAuthService(testUserStore(t, true), []byte("test-signing-key"))
	ctx := context.Background()

	profile, err := svc.CurrentUser(ctx, "musah")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RequireActiveUser(profile), ErrInactiveUser)

	profile.Disabled = false
	assert.NoError(t, svc.RequireActiveUser(profile))
}
