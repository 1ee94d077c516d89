package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("project", "42"), http.StatusNotFound},
		{"validation", NewInvalidInput("title is required", nil), http.StatusBadRequest},
		{"auth", NewUnauthorized("bad password", nil), http.StatusUnauthorized},
		{"media", NewMediaUpload("cloudinary timeout", errors.New("timeout")), http.StatusBadGateway},
		{"wrapped", fmt.Errorf("update project failed: %w", NewNotFound("project", "1")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestUnauthorizedMessageIsAmbiguous(t *testing.T) {
	wrongEmail := NewUnauthorized("user not found", nil)
	wrongPassword := NewUnauthorized("incorrect password", nil)

	assert.Equal(t, wrongEmail.ToJSON(), wrongPassword.ToJSON())
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	appErr := From(errors.New("pool closed"))

	assert.ErrorIs(t, appErr, ErrInternal)
	assert.NotContains(t, appErr.ToJSON(), "details")
}

func TestMediaUploadIsDistinguishableFromValidation(t *testing.T) {
	upload := NewMediaUpload("cloudinary down", nil).ToJSON()
	validation := NewInvalidInput("image is required", nil).ToJSON()

	assert.Equal(t, "media upload failed", upload["error"])
	assert.Equal(t, "invalid input", validation["error"])
}
