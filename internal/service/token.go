package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/pkg/log"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueAccessToken выпускает подписанный access-токен (API v2).
//
// Токен самодостаточен и на сервере не хранится; jti (RegisteredClaims.ID)
// нужен для точечного отзыва через denylist. Вторым значением возвращается
// срок жизни токена (для поля expires_in в ответе).
func (s *Service) IssueAccessToken(ctx context.Context, user *models.User) (string, time.Duration, error) {
	const op = "service.token.IssueAccessToken"

	now := time.Now().UTC()
	claims := accessClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		log.From(ctx).Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	return signed, s.cfg.AccessTokenTTL, nil
}

// VerifyAccessToken проверяет подпись и срок действия access-токена,
// сверяется с denylist-ом отозванных jti и резолвит subject в пользователя.
func (s *Service) VerifyAccessToken(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "service.token.VerifyAccessToken"

	lg := log.From(ctx)

	claims, err := s.parseAccessToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	revoked, err := s.deny.Contains(ctx, claims.ID)
	if err != nil {
		lg.Error("denylist_check_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		lg.Warn("access_token_revoked",
			slog.String("op", op),
			slog.String("user_id", claims.UserID),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.storage.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// InvalidateAccessToken отзывает access-токен (logout v2): jti попадает
// в denylist с TTL, равным остатку жизни токена. Отзыв уже недействительного
// токена — ошибка (клиент предъявил мусор).
func (s *Service) InvalidateAccessToken(ctx context.Context, tokenStr string) error {
	const op = "service.token.InvalidateAccessToken"

	claims, err := s.parseAccessToken(tokenStr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.deny.Add(ctx, claims.ID, ttl); err != nil {
		log.From(ctx).Error("denylist_add_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// parseAccessToken валидирует подпись/срок/issuer/audience и возвращает claims.
func (s *Service) parseAccessToken(tokenStr string) (*accessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
