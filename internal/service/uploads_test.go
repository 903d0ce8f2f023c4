package service

import (
	"bytes"
	"errors"
	"testing"
)

// Minimal valid PNG header followed by padding.
func pngPayload() []byte {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	return append(payload, make([]byte, 64)...)
}

func TestUploadValidator_ValidateImage(t *testing.T) {
	v := NewUploadValidator(1024, 2048)

	payload := pngPayload()
	check, err := v.ValidateImage(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", check.ContentType)
	}

	var validationErr UploadValidationError

	_, err = v.ValidateImage(bytes.NewReader(payload), 4096)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected size validation error, got %v", err)
	}

	text := []byte("just some text, definitely not an image")
	_, err = v.ValidateImage(bytes.NewReader(text), int64(len(text)))
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected type validation error, got %v", err)
	}

	_, err = v.ValidateImage(bytes.NewReader(nil), 0)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestUploadValidator_ValidatePDF(t *testing.T) {
	v := NewUploadValidator(1024, 2048)

	payload := append([]byte("%PDF-1.7\n"), make([]byte, 64)...)
	check, err := v.ValidatePDF(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.ContentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", check.ContentType)
	}

	var validationErr UploadValidationError
	png := pngPayload()
	if _, err := v.ValidatePDF(bytes.NewReader(png), int64(len(png))); !errors.As(err, &validationErr) {
		t.Fatalf("expected type validation error, got %v", err)
	}
}
