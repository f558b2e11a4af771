package models

import (
	"time"

	"github.com/google/uuid"
)

// Course — учебный курс.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
