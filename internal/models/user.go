package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учетная запись пользователя.
//
// PasswordHash содержит только bcrypt-хэш и никогда не сериализуется
// в ответы API (json:"-").
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
