package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

// CRUD курсов — прямой проброс в хранилище; единственный инвариант —
// существование записи (ErrCourseNotFound).

// CreateCourse создает новый курс.
func (s *Service) CreateCourse(ctx context.Context, name string) (*models.Course, error) {
	const op = "service.courses.CreateCourse"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ValidationErrors{
			"name": "The name field is required.",
		})
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return course, nil
}

// CourseByID возвращает курс по ID.
func (s *Service) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	const op = "service.courses.CourseByID"

	course, err := s.storage.CourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCourseNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return course, nil
}

// ListCourses возвращает все курсы.
func (s *Service) ListCourses(ctx context.Context) ([]models.Course, error) {
	const op = "service.courses.ListCourses"

	courses, err := s.storage.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return courses, nil
}

// UpdateCourse обновляет имя курса.
func (s *Service) UpdateCourse(ctx context.Context, id uuid.UUID, name string) (*models.Course, error) {
	const op = "service.courses.UpdateCourse"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ValidationErrors{
			"name": "The name field is required.",
		})
	}

	course, err := s.storage.CourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCourseNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	course.Name = name
	course.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCourseNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return course, nil
}

// DeleteCourse удаляет курс по ID.
func (s *Service) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	const op = "service.courses.DeleteCourse"

	if err := s.storage.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrCourseNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
