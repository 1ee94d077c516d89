package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

// readImage loads an optional image part from a multipart request. The type is
// sniffed from content, not taken from the client header.
func readImage(c *gin.Context, field string, maxBytes int64, required bool) (*service.ImageFile, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		if required {
			return nil, apperror.NewInvalidInput(fmt.Sprintf("%s is required", field), err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, bindError(err)
	}

	if fh.Size > maxBytes {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes>>20), nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("could not read %s", field), err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("could not read %s", field), err)
	}
	if int64(len(data)) > maxBytes {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes>>20), nil)
	}
	if len(data) == 0 {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s is empty", field), nil)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s must be an image, got %s", field, mt.String()), nil)
	}

	return &service.ImageFile{
		Data:     data,
		Filename: fh.Filename,
		MimeType: mt.String(),
	}, nil
}

// parseID treats a malformed id like an unknown one.
func parseID(c *gin.Context, resource string) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewNotFound(resource, raw)
	}
	return id, nil
}
