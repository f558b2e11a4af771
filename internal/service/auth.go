package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

// maxNameLen — максимальная длина отображаемого имени.
const maxNameLen = 255

// RegisterUser регистрирует нового пользователя.
//
// Ошибки валидации возвращаются как ValidationErrors с пополевой детализацией;
// занятый email — тоже ошибка валидации поля email (уникальность обеспечивает
// ограничение БД, гонка двух одновременных регистраций невозможна).
func (s *Service) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	ve := ValidationErrors{}

	name = strings.TrimSpace(name)
	if name == "" {
		ve["name"] = "The name field is required."
	} else if utf8.RuneCountInString(name) > maxNameLen {
		ve["name"] = "The name may not be greater than 255 characters."
	}

	normEmail, err := normalizeEmail(email)
	if err != nil {
		ve["email"] = "The email must be a valid email address."
	}

	if err := s.validatePassword(password); err != nil {
		ve["password"] = err.Error()
	}

	if len(ve) > 0 {
		return nil, fmt.Errorf("%s: %w", op, ve)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ValidationErrors{
				"email": "The email has already been taken.",
			})
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Authenticate выполняет проверку пары email+пароль.
//
// Возвращает единообразную ErrInvalidCredentials и для неизвестного email,
// и для неверного пароля — различающего сигнала нет.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.Authenticate"

	normEmail, err := normalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return user, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// normalizeEmail проверяет базовый формат email, обрезает пробелы снаружи
// и приводит к нижнему регистру (политика уникальности — без учета регистра).
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", errors.New("empty email")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальную длину пароля из конфигурации.
func (s *Service) validatePassword(pw string) error {
	minLen := s.cfg.PasswordMinLen
	if minLen <= 0 {
		minLen = 6
	}

	if utf8.RuneCountInString(pw) < minLen {
		return fmt.Errorf("The password must be at least %d characters.", minLen)
	}

	return nil
}
