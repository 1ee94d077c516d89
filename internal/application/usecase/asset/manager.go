package asset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const releaseTimeout = 10 * time.Second

var tracer = otel.Tracer("asset_usecase")

// Manager uploads images and releases the ones records no longer reference.
type Manager struct {
	store     service.MediaStore
	publisher service.EventPublisher
	logger    logger.Logger
}

// NewManager accepts a nil publisher; orphans are then only logged.
func NewManager(store service.MediaStore, publisher service.EventPublisher, log logger.Logger) *Manager {
	return &Manager{store: store, publisher: publisher, logger: log}
}

func (m *Manager) Upload(ctx context.Context, file service.ImageFile, folder string) (*service.StoredMedia, error) {
	ctx, span := tracer.Start(ctx, "Upload")
	defer span.End()
	span.SetAttributes(
		attribute.String("folder", folder),
		attribute.Int("bytes", len(file.Data)),
	)

	stored, err := m.store.Store(ctx, file, folder)
	if err != nil {
		span.RecordError(err)
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewMediaUpload("media store failed", err)
	}
	span.SetAttributes(attribute.String("handle", stored.Handle))
	return stored, nil
}

// Release deletes handle best-effort. A failure is logged and reported as an
// orphan event for the worker; it never fails the caller.
func (m *Manager) Release(ctx context.Context, handle, resource string, resourceID uuid.UUID) {
	if handle == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	err := m.store.Delete(ctx, handle)
	if err == nil {
		return
	}

	m.logger.Warn("Failed to release media, reporting orphan",
		zap.String("handle", handle),
		zap.String("resource", resource),
		zap.String("resource_id", resourceID.String()),
		zap.Error(err),
	)
	if m.publisher == nil {
		return
	}
	evt := service.MediaOrphanedEvent{
		EventType:  service.MediaEventTypeOrphaned,
		Handle:     handle,
		Resource:   resource,
		ResourceID: resourceID,
		Reason:     err.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if pubErr := m.publisher.PublishMediaOrphaned(ctx, evt); pubErr != nil {
		m.logger.Error("Failed to publish orphaned media event", pubErr, zap.String("handle", handle))
	}
}

type CleanupOrphanUseCase struct {
	store  service.MediaStore
	logger logger.Logger
}

func NewCleanupOrphanUseCase(store service.MediaStore, log logger.Logger) *CleanupOrphanUseCase {
	return &CleanupOrphanUseCase{store: store, logger: log}
}

// Execute retries the delete of an orphaned image. An error leaves the event
// for redelivery.
func (uc *CleanupOrphanUseCase) Execute(ctx context.Context, evt service.MediaOrphanedEvent) error {
	if evt.Handle == "" {
		return nil
	}
	if err := uc.store.Delete(ctx, evt.Handle); err != nil {
		return err
	}
	uc.logger.Info("Released orphaned media",
		zap.String("handle", evt.Handle),
		zap.String("resource", evt.Resource),
		zap.String("resource_id", evt.ResourceID.String()),
	)
	return nil
}
