package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

// SaveSessionToken сохраняет новый токен сессии.
func (s *Storage) SaveSessionToken(ctx context.Context, token *models.SessionToken) error {
	const op = "storage.postgres.SaveSessionToken"

	query := `
		INSERT INTO session_tokens(token_hash, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.Exec(ctx, query,
		token.TokenHash,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SessionTokenByHash находит токен сессии по его хэшу.
func (s *Storage) SessionTokenByHash(ctx context.Context, hash string) (*models.SessionToken, error) {
	const op = "storage.postgres.SessionTokenByHash"

	query := `
		SELECT token_hash, user_id, created_at, expires_at
		FROM session_tokens
		WHERE token_hash = $1
	`

	var token models.SessionToken
	err := s.db.QueryRow(ctx, query, hash).Scan(
		&token.TokenHash,
		&token.UserID,
		&token.CreatedAt,
		&token.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &token, nil
}

// DeleteSessionTokensByUser удаляет все токены пользователя.
// Идемпотентна: ноль удаленных строк — не ошибка.
func (s *Storage) DeleteSessionTokensByUser(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.DeleteSessionTokensByUser"

	query := `DELETE FROM session_tokens WHERE user_id = $1`

	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteExpiredSessionTokens удаляет все просроченные токены.
func (s *Storage) DeleteExpiredSessionTokens(ctx context.Context, now time.Time) error {
	const op = "storage.postgres.DeleteExpiredSessionTokens"

	query := `DELETE FROM session_tokens WHERE expires_at <= $1`

	if _, err := s.db.Exec(ctx, query, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
