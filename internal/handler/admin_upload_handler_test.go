package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/service"
)

func newAdminUploadHandler() *AdminUploadHandler {
	companies := service.NewCompaniesService(&stubCompaniesRepo{}, nil)
	trainees := service.NewTraineesService(&stubTraineesRepo{}, nil)
	return NewAdminUploadHandler(companies, trainees)
}

func multipartCSV(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestAdminUploadHandler_UploadCompaniesCSV(t *testing.T) {
	e := echo.New()
	handler := newAdminUploadHandler()

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/companies/upload-csv", nil)
		rec := httptest.NewRecorder()
		_ = handler.UploadCompaniesCSV(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing columns", func(t *testing.T) {
		body, contentType := multipartCSV(t, "foo,bar\n1,2")
		req := httptest.NewRequest(http.MethodPost, "/admin/companies/upload-csv", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		_ = handler.UploadCompaniesCSV(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		csvData := strings.Join([]string{
			"name,summary,industries",
			"KADA Labs,Training platforms,Education",
		}, "\n")
		body, contentType := multipartCSV(t, csvData)
		req := httptest.NewRequest(http.MethodPost, "/admin/companies/upload-csv", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		_ = handler.UploadCompaniesCSV(e.NewContext(req, rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestAdminUploadHandler_UploadStudentsCSV(t *testing.T) {
	e := echo.New()
	handler := newAdminUploadHandler()

	csvData := strings.Join([]string{
		"full_name,status,university,major",
		"Siti Rahma,Current Trainee,Universitas Indonesia,Computer Science",
	}, "\n")
	body, contentType := multipartCSV(t, csvData)
	req := httptest.NewRequest(http.MethodPost, "/admin/students/upload-csv", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	_ = handler.UploadStudentsCSV(e.NewContext(req, rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
