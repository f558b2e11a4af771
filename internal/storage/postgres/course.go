package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

// SaveCourse создает новый курс.
func (s *Storage) SaveCourse(ctx context.Context, course *models.Course) error {
	const op = "storage.postgres.SaveCourse"

	query := `
		INSERT INTO courses(id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.Exec(ctx, query,
		course.ID,
		course.Name,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CourseByID находит курс по ID.
func (s *Storage) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	const op = "storage.postgres.CourseByID"

	query := `
		SELECT id, name, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := s.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &course, nil
}

// ListCourses возвращает все курсы в порядке создания.
func (s *Storage) ListCourses(ctx context.Context) ([]models.Course, error) {
	const op = "storage.postgres.ListCourses"

	query := `
		SELECT id, name, created_at, updated_at
		FROM courses
		ORDER BY created_at, id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return courses, nil
}

// UpdateCourse обновляет имя курса.
func (s *Storage) UpdateCourse(ctx context.Context, course *models.Course) error {
	const op = "storage.postgres.UpdateCourse"

	query := `
		UPDATE courses
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, course.ID, course.Name, course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteCourse удаляет курс по ID.
func (s *Storage) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteCourse"

	query := `DELETE FROM courses WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
