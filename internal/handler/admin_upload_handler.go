package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/service"
)

// AdminUploadHandler handles CSV ingestion for administrators.
type AdminUploadHandler struct {
	companies *service.CompaniesService
	trainees  *service.TraineesService
}

// NewAdminUploadHandler wires a handler backed by both catalogue services.
func NewAdminUploadHandler(companies *service.CompaniesService, trainees *service.TraineesService) *AdminUploadHandler {
	return &AdminUploadHandler{companies: companies, trainees: trainees}
}

// UploadCompaniesCSV handles POST /admin/companies/upload-csv requests.
func (h *AdminUploadHandler) UploadCompaniesCSV(c echo.Context) error {
	return h.uploadCSV(c, "companies CSV processed", h.companies.ImportCompaniesCSV)
}

// UploadStudentsCSV handles POST /admin/students/upload-csv requests.
func (h *AdminUploadHandler) UploadStudentsCSV(c echo.Context) error {
	return h.uploadCSV(c, "students CSV processed", h.trainees.ImportTraineesCSV)
}

func (h *AdminUploadHandler) uploadCSV(c echo.Context, message string, ingest func(ctx context.Context, r io.Reader) (service.UploadSummary, error)) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := ingest(c.Request().Context(), file)
	if err != nil {
		var validationErr service.CSVValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}

	return Success(c, http.StatusOK, message, summary)
}
