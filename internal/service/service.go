// service содержит бизнес-логику course-api:
// регистрацию/аутентификацию пользователей, выпуск/проверку токенов обоих
// поколений (opaque v1 и подписанные v2), CRUD курсов и работу с хранилищем
// через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные хранилище (storage.Storage) и denylist потокобезопасны.
//   - Ошибки возвращаются и далее маппятся HTTP-слоем на статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/go-course-api/internal/config"
	"github.com/pribylovaa/go-course-api/internal/denylist"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

var (
	// ErrInvalidCredentials — пара email/пароль неверна или пользователь не найден.
	// Сообщение едино для обоих случаев (защита от перечисления аккаунтов).
	// HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (opaque/access) некорректен по формату/подписи
	// или отсутствует в хранилище. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — токен отозван (logout) и недействителен
	// независимо от срока. HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrCourseNotFound — курс с указанным ID отсутствует. HTTP 404.
	ErrCourseNotFound = errors.New("course not found")

	// ErrSessionTokenCollision — исчерпаны попытки сгенерировать уникальный
	// токен сессии (редкий случай коллизий хэша в БД после нескольких ретраев).
	// HTTP 500.
	ErrSessionTokenCollision = errors.New("session token collision")
)

// ValidationErrors — ошибки валидации входных данных по полям (field -> message).
// HTTP 422 с пополевой детализацией.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(v))
}

// AsValidationErrors извлекает ValidationErrors из цепочки ошибок.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}

// Service описывает бизнес-логику course-api.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	deny    denylist.Denylist
}

// New создаёт новый экземпляр Service.
// deny обязателен: без denylist-а logout для подписанных токенов
// не имеет силы до их естественного истечения.
func New(storage storage.Storage, cfg config.AuthConfig, deny denylist.Denylist) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
		deny:    deny,
	}
}
