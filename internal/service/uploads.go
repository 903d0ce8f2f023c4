package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// UploadValidationError indicates that an uploaded file is unacceptable.
type UploadValidationError struct {
	Message string
}

// Error implements the error interface.
func (e UploadValidationError) Error() string {
	return e.Message
}

// UploadCheck reports the accepted file's detected properties.
type UploadCheck struct {
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// UploadValidator checks logo, photo and CV uploads before the client
// stores them elsewhere. Content types are sniffed from the payload, not
// taken from the file extension.
type UploadValidator struct {
	MaxImageBytes    int64
	MaxDocumentBytes int64
}

// NewUploadValidator builds a validator with the configured size ceilings.
func NewUploadValidator(maxImageBytes, maxDocumentBytes int64) *UploadValidator {
	if maxImageBytes <= 0 {
		maxImageBytes = 2 << 20
	}
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = 5 << 20
	}
	return &UploadValidator{MaxImageBytes: maxImageBytes, MaxDocumentBytes: maxDocumentBytes}
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ValidateImage checks a logo or profile photo upload.
func (v *UploadValidator) ValidateImage(r io.Reader, size int64) (UploadCheck, error) {
	if size <= 0 {
		return UploadCheck{}, UploadValidationError{Message: "file is empty"}
	}
	if size > v.MaxImageBytes {
		return UploadCheck{}, UploadValidationError{Message: fmt.Sprintf("image exceeds %d bytes", v.MaxImageBytes)}
	}

	contentType, err := sniffContentType(r)
	if err != nil {
		return UploadCheck{}, err
	}
	if !allowedImageTypes[contentType] {
		return UploadCheck{}, UploadValidationError{Message: fmt.Sprintf("unsupported image type %s", contentType)}
	}

	return UploadCheck{ContentType: contentType, SizeBytes: size}, nil
}

// ValidatePDF checks a CV upload.
func (v *UploadValidator) ValidatePDF(r io.Reader, size int64) (UploadCheck, error) {
	if size <= 0 {
		return UploadCheck{}, UploadValidationError{Message: "file is empty"}
	}
	if size > v.MaxDocumentBytes {
		return UploadCheck{}, UploadValidationError{Message: fmt.Sprintf("document exceeds %d bytes", v.MaxDocumentBytes)}
	}

	contentType, err := sniffContentType(r)
	if err != nil {
		return UploadCheck{}, err
	}
	if contentType != "application/pdf" {
		return UploadCheck{}, UploadValidationError{Message: fmt.Sprintf("expected a PDF, got %s", contentType)}
	}

	return UploadCheck{ContentType: contentType, SizeBytes: size}, nil
}

func sniffContentType(r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	// DetectContentType has no PDF signature; check the magic bytes directly.
	if strings.HasPrefix(string(head[:n]), "%PDF-") {
		contentType = "application/pdf"
	}
	if idx := strings.Index(contentType, ";"); idx > 0 {
		contentType = contentType[:idx]
	}
	return contentType, nil
}
