package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

func newTestCourse(name string) *models.Course {
	now := time.Now().UTC()
	return &models.Course{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestIntegration_Course_CRUD_OK — полный жизненный цикл курса.
func TestIntegration_Course_CRUD_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	c := newTestCourse("Go 101")
	require.NoError(t, st.SaveCourse(context.Background(), c))

	got, err := st.CourseByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "Go 101", got.Name)
	require.WithinDuration(t, c.CreatedAt, got.CreatedAt, time.Second)

	c.Name = "Go 102"
	c.UpdatedAt = time.Now().UTC()
	require.NoError(t, st.UpdateCourse(context.Background(), c))

	got, err = st.CourseByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "Go 102", got.Name)

	require.NoError(t, st.DeleteCourse(context.Background(), c.ID))

	_, err = st.CourseByID(context.Background(), c.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_ListCourses — пустой список без курсов; порядок по времени создания.
func TestIntegration_ListCourses(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	list, err := st.ListCourses(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	first := newTestCourse("First")
	require.NoError(t, st.SaveCourse(context.Background(), first))

	second := newTestCourse("Second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, st.SaveCourse(context.Background(), second))

	list, err = st.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "First", list[0].Name)
	require.Equal(t, "Second", list[1].Name)
}

// TestIntegration_UpdateCourse_NotFound — обновление и удаление несуществующего курса
// возвращают storage.ErrNotFound (по нулю затронутых строк).
func TestIntegration_UpdateCourse_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	missing := newTestCourse("Ghost")
	require.ErrorIs(t, st.UpdateCourse(context.Background(), missing), storage.ErrNotFound)
	require.ErrorIs(t, st.DeleteCourse(context.Background(), uuid.New()), storage.ErrNotFound)
}
