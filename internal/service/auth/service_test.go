package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse battery staple"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		SessionSecret:     "test-secret",
		SessionTTL:        time.Hour,
	}
	return NewService(nil, cfg).(*service)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("Success", func(t *testing.T) {
		session, err := svc.Login(ctx, domain.LoginInput{Email: "Admin@Example.com", Password: adminPassword})

		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, adminEmail, session.Email)

		claims, err := svc.Validate(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, adminEmail, claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.LoginInput{Email: adminEmail, Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong Email", func(t *testing.T) {
		_, err := svc.Login(ctx, domain.LoginInput{Email: "someone@example.com", Password: adminPassword})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("Expired Token", func(t *testing.T) {
		svc := newTestService(t)
		session, err := svc.Login(ctx, domain.LoginInput{Email: adminEmail, Password: adminPassword})
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err = svc.Validate(ctx, session.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Foreign Signature", func(t *testing.T) {
		svc := newTestService(t)
		claims := &Claims{
			Email: adminEmail,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Non Admin Email", func(t *testing.T) {
		svc := newTestService(t)
		claims := &Claims{
			Email: "intruder@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Admin Email Not Configured", func(t *testing.T) {
		svc := newTestService(t)
		session, err := svc.Login(ctx, domain.LoginInput{Email: adminEmail, Password: adminPassword})
		require.NoError(t, err)

		svc.cfg.AdminEmail = ""

		_, err = svc.Validate(ctx, session.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Empty Token", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Validate(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_LogoutWithoutRedis(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	session, err := svc.Login(ctx, domain.LoginInput{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, session.Token))
	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), domain.ErrUnauthorized)
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	svc := newTestService(t)
	svc.rdb = rdb

	session, err := svc.Login(ctx, domain.LoginInput{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	claims, err := svc.Validate(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	key := revokedKeyPrefix + claims.ID
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= time.Hour, "revocation must expire with the token, got %s", ttl)

	_, err = svc.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
