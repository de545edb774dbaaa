package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

const revokedKeyPrefix = "session:revoked:"

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.Session, error)
	Validate(ctx context.Context, token string) (*Claims, error)
	Logout(ctx context.Context, token string) error
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type service struct {
	rdb    *redis.Client
	cfg    *config.Config
	now    func() time.Time
	logger *slog.Logger
}

// NewService accepts a nil redis client; logout then only clears the
// cookie and tokens stay valid until they expire.
func NewService(rdb *redis.Client, cfg *config.Config) Service {
	return &service{
		rdb:    rdb,
		cfg:    cfg,
		now:    time.Now,
		logger: slog.Default().With(slog.String("component", "auth_service")),
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Session, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		s.logger.Error("admin credentials not configured")
		return nil, ErrInvalidCredentials
	}

	email := strings.TrimSpace(input.Email)
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(s.cfg.AdminEmail))) != 1 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.SessionTTL)
	claims := &Claims{
		Email: s.cfg.AdminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.cfg.AdminEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("admin logged in")
	return &domain.Session{
		Token:     token,
		Email:     s.cfg.AdminEmail,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// Validate reports every failure as domain.ErrUnauthorized; the reason is
// only logged.
func (s *service) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	if s.cfg.AdminEmail == "" {
		s.logger.Error("Admin email not configured")
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.parse(tokenString)
	if err != nil {
		s.logger.Debug("rejected session token", slog.Any("error", err))
		return nil, domain.ErrUnauthorized
	}

	if !strings.EqualFold(claims.Email, s.cfg.AdminEmail) {
		s.logger.Warn("session token for non-admin email", slog.String("email", claims.Email))
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("failed to check session revocation", slog.Any("error", err))
		return nil, domain.ErrUnauthorized
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

func (s *service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *service) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *service) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.rdb == nil || jti == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
