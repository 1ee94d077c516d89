package media_storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const destroyNotFound = "not found"

// cloudinaryAPI is the slice of the SDK the adapter calls.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type cloudinaryAdapter struct {
	api    cloudinaryAPI
	logger logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.MediaStore, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	log.Info("Connect Cloudinary successfully.")
	return &cloudinaryAdapter{api: &cld.Upload, logger: log}, nil
}

func (a *cloudinaryAdapter) Store(ctx context.Context, file service.ImageFile, folder string) (*service.StoredMedia, error) {
	if !strings.HasPrefix(file.MimeType, "image/") {
		return nil, apperror.NewMediaUpload(fmt.Sprintf("refusing to upload %q", file.MimeType), nil)
	}

	res, err := a.api.Upload(ctx, bytes.NewReader(file.Data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, apperror.NewMediaUpload("cloudinary upload failed", err)
	}
	if res.Error.Message != "" {
		return nil, apperror.NewMediaUpload("cloudinary rejected upload", errors.New(res.Error.Message))
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return nil, apperror.NewMediaUpload("cloudinary returned no url", nil)
	}

	a.logger.Debug("Uploaded image", zap.String("public_id", res.PublicID), zap.Int("bytes", len(file.Data)))
	return &service.StoredMedia{URL: res.SecureURL, Handle: res.PublicID}, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	res, err := a.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     handle,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary %s: %w", handle, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary refused delete of %s: %s", handle, res.Error.Message)
	}
	if res.Result != "ok" && res.Result != destroyNotFound {
		return fmt.Errorf("cloudinary delete of %s returned %q", handle, res.Result)
	}
	return nil
}
