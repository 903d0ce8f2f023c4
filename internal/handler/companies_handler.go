package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/repository"
	"github.com/velizhask/KADA-Connect/internal/service"
)

// CompaniesHandler exposes company catalogue endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
	uploads *service.UploadValidator
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(companies *service.CompaniesService, uploads *service.UploadValidator) *CompaniesHandler {
	return &CompaniesHandler{service: companies, uploads: uploads}
}

// List handles GET /companies requests. Search terms and category
// filters arrive as query parameters; absent parameters constrain
// nothing.
func (h *CompaniesHandler) List(c echo.Context) error {
	filter := dto.CompanyFilter{
		Q:        strings.TrimSpace(c.QueryParam("q")),
		Industry: normalizeFilterParam(c.QueryParam("industry")),
		TechRole: normalizeFilterParam(c.QueryParam("techRole")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		Limit:    parseIntDefault(c.QueryParam("limit"), 20),
	}

	page, err := h.service.ListCompanies(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list companies")
	}

	return Success(c, http.StatusOK, "companies retrieved", page)
}

// Get handles GET /companies/:id requests.
func (h *CompaniesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	company, err := h.service.GetCompany(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch company")
	}

	return Success(c, http.StatusOK, "company retrieved", company)
}

// Create handles POST /companies requests.
func (h *CompaniesHandler) Create(c echo.Context) error {
	var req dto.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.CreateCompany(c.Request().Context(), req)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to create company")
	}

	return Success(c, http.StatusCreated, "company created", company)
}

// Update handles PUT /companies/:id requests.
func (h *CompaniesHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	var req dto.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.UpdateCompany(c.Request().Context(), id, req)
	if err != nil {
		var validationErr service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return Error(c, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, repository.ErrCompanyNotFound):
			return Error(c, http.StatusNotFound, "company not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update company")
		}
	}

	return Success(c, http.StatusOK, "company updated", company)
}

// Delete handles DELETE /companies/:id requests.
func (h *CompaniesHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	if err := h.service.DeleteCompany(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete company")
	}

	return Success(c, http.StatusOK, "company deleted", nil)
}

// Industries handles GET /companies/industries requests.
func (h *CompaniesHandler) Industries(c echo.Context) error {
	industries, err := h.service.Industries(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list industries")
	}
	return Success(c, http.StatusOK, "industries retrieved", industries)
}

// TechRoles handles GET /companies/tech-roles requests.
func (h *CompaniesHandler) TechRoles(c echo.Context) error {
	roles, err := h.service.TechRoles(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list tech roles")
	}
	return Success(c, http.StatusOK, "tech roles retrieved", roles)
}

// Stats handles GET /companies/stats requests.
func (h *CompaniesHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to compute stats")
	}
	return Success(c, http.StatusOK, "stats retrieved", stats)
}

// ValidateLogo handles POST /companies/validate-logo requests. The file
// is checked, not stored; clients upload to their own hosting afterwards.
func (h *CompaniesHandler) ValidateLogo(c echo.Context) error {
	return validateUpload(c, "logo", h.uploads.ValidateImage)
}

func validateUpload(c echo.Context, field string, validate func(r io.Reader, size int64) (service.UploadCheck, error)) error {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		fileHeader, err = c.FormFile("file")
	}
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	check, err := validate(file, fileHeader.Size)
	if err != nil {
		var validationErr service.UploadValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to validate file")
	}

	return Success(c, http.StatusOK, "file accepted", check)
}

// normalizeFilterParam treats the catch-all filter value as no filter.
func normalizeFilterParam(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
