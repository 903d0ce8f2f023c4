package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/repository"
	"github.com/velizhask/KADA-Connect/internal/service"
)

// StudentsHandler exposes trainee catalogue endpoints. The resource is
// published as /students even though profiles cover alumni too.
type StudentsHandler struct {
	service *service.TraineesService
	uploads *service.UploadValidator
}

// NewStudentsHandler creates a new handler instance.
func NewStudentsHandler(trainees *service.TraineesService, uploads *service.UploadValidator) *StudentsHandler {
	return &StudentsHandler{service: trainees, uploads: uploads}
}

// List handles GET /students requests.
func (h *StudentsHandler) List(c echo.Context) error {
	filter := dto.TraineeFilter{
		Q:          strings.TrimSpace(c.QueryParam("q")),
		Status:     normalizeFilterParam(c.QueryParam("status")),
		University: normalizeFilterParam(c.QueryParam("university")),
		Major:      normalizeFilterParam(c.QueryParam("major")),
		Industry:   normalizeFilterParam(c.QueryParam("industry")),
		Skill:      normalizeFilterParam(c.QueryParam("skills")),
		Page:       parseIntDefault(c.QueryParam("page"), 1),
		Limit:      parseIntDefault(c.QueryParam("limit"), 20),
	}

	page, err := h.service.ListTrainees(c.Request().Context(), filter)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to list students")
	}

	return Success(c, http.StatusOK, "students retrieved", page)
}

// Get handles GET /students/:id requests.
func (h *StudentsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid student id")
	}

	trainee, err := h.service.GetTrainee(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTraineeNotFound) {
			return Error(c, http.StatusNotFound, "student not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch student")
	}

	return Success(c, http.StatusOK, "student retrieved", trainee)
}

// Create handles POST /students requests.
func (h *StudentsHandler) Create(c echo.Context) error {
	var req dto.TraineeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	trainee, err := h.service.CreateTrainee(c.Request().Context(), req)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to create student")
	}

	return Success(c, http.StatusCreated, "student created", trainee)
}

// Update handles PUT /students/:id requests.
func (h *StudentsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid student id")
	}

	var req dto.TraineeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	trainee, err := h.service.UpdateTrainee(c.Request().Context(), id, req)
	if err != nil {
		var validationErr service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return Error(c, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, repository.ErrTraineeNotFound):
			return Error(c, http.StatusNotFound, "student not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update student")
		}
	}

	return Success(c, http.StatusOK, "student updated", trainee)
}

// Delete handles DELETE /students/:id requests.
func (h *StudentsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid student id")
	}

	if err := h.service.DeleteTrainee(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTraineeNotFound) {
			return Error(c, http.StatusNotFound, "student not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete student")
	}

	return Success(c, http.StatusOK, "student deleted", nil)
}

// Featured handles GET /students/featured requests.
func (h *StudentsHandler) Featured(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), 0)
	trainees, err := h.service.FeaturedTrainees(c.Request().Context(), limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list featured students")
	}
	return Success(c, http.StatusOK, "featured students retrieved", trainees)
}

// Universities handles GET /students/universities requests.
func (h *StudentsHandler) Universities(c echo.Context) error {
	universities, err := h.service.Universities(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list universities")
	}
	return Success(c, http.StatusOK, "universities retrieved", universities)
}

// Majors handles GET /students/majors requests.
func (h *StudentsHandler) Majors(c echo.Context) error {
	majors, err := h.service.Majors(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list majors")
	}
	return Success(c, http.StatusOK, "majors retrieved", majors)
}

// Industries handles GET /students/industries requests.
func (h *StudentsHandler) Industries(c echo.Context) error {
	industries, err := h.service.Industries(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list industries")
	}
	return Success(c, http.StatusOK, "industries retrieved", industries)
}

// Skills handles GET /students/skills requests.
func (h *StudentsHandler) Skills(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), 0)
	skills, err := h.service.PopularSkills(c.Request().Context(), limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list skills")
	}
	return Success(c, http.StatusOK, "skills retrieved", skills)
}

// StatusOptions handles GET /students/status-options requests.
func (h *StudentsHandler) StatusOptions(c echo.Context) error {
	return Success(c, http.StatusOK, "status options retrieved", h.service.StatusOptions())
}

// Stats handles GET /students/stats requests.
func (h *StudentsHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to compute stats")
	}
	return Success(c, http.StatusOK, "stats retrieved", stats)
}

// ValidateCV handles POST /students/validate-cv requests.
func (h *StudentsHandler) ValidateCV(c echo.Context) error {
	return validateUpload(c, "cv", h.uploads.ValidatePDF)
}

// ValidatePhoto handles POST /students/validate-photo requests.
func (h *StudentsHandler) ValidatePhoto(c echo.Context) error {
	return validateUpload(c, "photo", h.uploads.ValidateImage)
}
