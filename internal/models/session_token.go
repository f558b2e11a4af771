package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken — opaque-токен сессии (API v1).
//
// В БД хранится только SHA-256 хэш токена; исходное значение выдаётся
// клиенту ровно один раз при логине и восстановлению не подлежит.
// У пользователя может быть несколько активных сессий (мультидевайс).
type SessionToken struct {
	TokenHash string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}
