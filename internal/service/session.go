package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/pkg/log"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

// IssueSessionToken выпускает новый opaque-токен сессии (API v1).
//
// Исходное значение токена возвращается ровно один раз; в БД сохраняется
// только SHA-256 хэш. Коллизия хэша в БД крайне маловероятна, но на всякий
// случай делаем несколько попыток генерации.
func (s *Service) IssueSessionToken(ctx context.Context, user *models.User) (string, error) {
	const (
		op          = "service.session.IssueSessionToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			lg.Error("session_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}
		plain := base64.RawURLEncoding.EncodeToString(b)

		now := time.Now().UTC()
		token := &models.SessionToken{
			TokenHash: hashSessionToken(plain),
			UserID:    user.ID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.SessionTokenTTL),
		}

		if err := s.storage.SaveSessionToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_session_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}

		return plain, nil
	}

	lg.Error("session_collision_exceeded",
		slog.String("op", op),
	)

	return "", fmt.Errorf("%s: %w", op, ErrSessionTokenCollision)
}

// ResolveSessionToken находит пользователя по предъявленному opaque-токену.
// Используется гейтом защищённых маршрутов на каждом запросе.
func (s *Service) ResolveSessionToken(ctx context.Context, plain string) (*models.User, error) {
	const op = "service.session.ResolveSessionToken"

	lg := log.From(ctx)

	if plain == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	token, err := s.storage.SessionTokenByHash(ctx, hashSessionToken(plain))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("session_lookup_not_found",
				slog.String("op", op),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		lg.Error("session_lookup_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if time.Now().UTC().After(token.ExpiresAt) {
		lg.Warn("session_expired",
			slog.String("op", op),
			slog.String("user_id", token.UserID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	user, err := s.storage.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// RevokeSessionTokens отзывает все токены сессий пользователя (logout v1).
//
// Политика исходной системы: выход инвалидирует каждую активную сессию
// пользователя, не только текущее устройство. Идемпотентна.
func (s *Service) RevokeSessionTokens(ctx context.Context, userID uuid.UUID) error {
	const op = "service.session.RevokeSessionTokens"

	if err := s.storage.DeleteSessionTokensByUser(ctx, userID); err != nil {
		log.From(ctx).Error("revoke_sessions_failed",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// hashSessionToken возвращает base64url(SHA-256) от исходного токена.
func hashSessionToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
