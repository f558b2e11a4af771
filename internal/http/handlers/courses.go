package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-course-api/internal/http/httperr"
	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/service"
)

// CRUD курсов (за гейтом v1). Формат ответов совместим с исходным API:
// status + message + course(s).

type courseRequest struct {
	Name string `json:"name"`
}

type courseResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Course  *models.Course `json:"course,omitempty"`
}

type coursesResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Courses []models.Course `json:"courses"`
}

// CreateCourse — POST /course.
func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in courseRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	course, err := h.svc.CreateCourse(r.Context(), in.Name)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, courseResponse{
		Status:  "success",
		Message: "Course created successfully",
		Course:  course,
	})
}

// ListCourses — GET /courses.
func (h *Handlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.ListCourses(r.Context())
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, coursesResponse{
		Status:  "success",
		Message: "Courses retrieved successfully",
		Courses: courses,
	})
}

// GetCourse — GET /courses/{id}.
func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	course, err := h.svc.CourseByID(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courseResponse{
		Status:  "success",
		Message: "Course retrieved successfully",
		Course:  course,
	})
}

// UpdateCourse — PUT /courses/{id}.
func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	var in courseRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	course, err := h.svc.UpdateCourse(r.Context(), id, in.Name)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courseResponse{
		Status:  "success",
		Message: "Course updated successfully",
		Course:  course,
	})
}

// DeleteCourse — DELETE /courses/{id}.
func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteCourse(r.Context(), id); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courseResponse{
		Status:  "success",
		Message: "Course deleted successfully",
	})
}

// courseID — парсит {id} из пути. Синтаксически некорректный id означает,
// что такого ресурса не существует — отвечаем 404, как и на отсутствующий.
func courseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, service.ErrCourseNotFound
	}

	return id, nil
}
