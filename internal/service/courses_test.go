package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

func TestCreateCourse_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveCourse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Course) error {
			require.Equal(t, "Go 101", c.Name)
			require.NotEqual(t, uuid.Nil, c.ID)
			return nil
		})

	course, err := svc.CreateCourse(context.Background(), "  Go 101  ")
	require.NoError(t, err)
	require.Equal(t, "Go 101", course.Name)
}

func TestCreateCourse_EmptyName(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateCourse(context.Background(), "   ")
	require.Error(t, err)

	ve, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Contains(t, ve, "name")
}

func TestCourseByID_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().CourseByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.CourseByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListCourses_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	want := []models.Course{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}
	st.EXPECT().ListCourses(gomock.Any()).Return(want, nil)

	got, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUpdateCourse_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &models.Course{
		ID:        id,
		Name:      "Old",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}

	st.EXPECT().CourseByID(gomock.Any(), id).Return(existing, nil)
	st.EXPECT().UpdateCourse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Course) error {
			require.Equal(t, id, c.ID)
			require.Equal(t, "New", c.Name)
			require.True(t, c.UpdatedAt.After(c.CreatedAt))
			return nil
		})

	course, err := svc.UpdateCourse(context.Background(), id, "New")
	require.NoError(t, err)
	require.Equal(t, "New", course.Name)
}

func TestUpdateCourse_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().CourseByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.UpdateCourse(context.Background(), uuid.New(), "New")
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDeleteCourse_OKAndNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	id := uuid.New()

	gomock.InOrder(
		st.EXPECT().DeleteCourse(gomock.Any(), id).Return(nil),
		st.EXPECT().DeleteCourse(gomock.Any(), id).Return(storage.ErrNotFound),
	)

	require.NoError(t, svc.DeleteCourse(context.Background(), id))
	require.ErrorIs(t, svc.DeleteCourse(context.Background(), id), ErrCourseNotFound)
}

func TestCourses_StorageErrorPassThrough(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	boom := errors.New("db down")
	st.EXPECT().ListCourses(gomock.Any()).Return(nil, boom)

	_, err := svc.ListCourses(context.Background())
	require.ErrorIs(t, err, boom)
}
