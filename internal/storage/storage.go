// storage задаёт контракт работы с БД и сентинельные ошибки слоя хранения.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-course-api/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен/курс).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/token hash).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	// Уникальность email обеспечивается ограничением БД (атомарный check-and-insert).
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (без учета регистра).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionTokenStorage выполняет операции над opaque-токенами сессий (API v1).
type SessionTokenStorage interface {
	// SaveSessionToken сохраняет новый токен сессии.
	SaveSessionToken(ctx context.Context, token *models.SessionToken) error
	// SessionTokenByHash находит токен сессии по его хэшу.
	SessionTokenByHash(ctx context.Context, hash string) (*models.SessionToken, error)
	// DeleteSessionTokensByUser удаляет все токены пользователя.
	// Идемпотентна: отсутствие токенов не является ошибкой.
	DeleteSessionTokensByUser(ctx context.Context, userID uuid.UUID) error
	// DeleteExpiredSessionTokens удаляет все просроченные токены.
	DeleteExpiredSessionTokens(ctx context.Context, now time.Time) error
}

// CourseStorage выполняет операции над курсами.
type CourseStorage interface {
	// SaveCourse создает новый курс.
	SaveCourse(ctx context.Context, course *models.Course) error
	// CourseByID находит курс по ID.
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	// ListCourses возвращает все курсы (порядок — по времени создания).
	ListCourses(ctx context.Context) ([]models.Course, error)
	// UpdateCourse обновляет имя курса.
	UpdateCourse(ctx context.Context, course *models.Course) error
	// DeleteCourse удаляет курс по ID.
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	SessionTokenStorage
	CourseStorage
	Close()
}
