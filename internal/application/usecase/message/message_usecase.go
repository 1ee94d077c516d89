package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const Acknowledgement = "Message received successfully!"

type MessageUseCase struct {
	repo      message.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

// NewMessageUseCase accepts a nil publisher.
func NewMessageUseCase(r message.Repository, publisher service.EventPublisher, log logger.Logger) *MessageUseCase {
	return &MessageUseCase{repo: r, publisher: publisher, logger: log}
}

type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit stores a visitor message. It is the only way messages are created.
func (uc *MessageUseCase) Submit(ctx context.Context, in SubmitInput) (*message.Message, error) {
	now := time.Now().UTC()
	m := &message.Message{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Body:      strings.TrimSpace(in.Message),
		IsRead:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, m); err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		evt := service.MessageReceivedEvent{
			EventType:  service.MessageEventTypeReceived,
			MessageID:  m.ID,
			Name:       m.Name,
			Email:      m.Email,
			Subject:    m.Subject,
			OccurredAt: now,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := uc.publisher.PublishMessageReceived(ctx, evt); err != nil {
				uc.logger.Error("Failed to publish Kafka 'message.received' event", err, zap.String("message_id", m.ID.String()))
			}
		}()
	}
	return m, nil
}

func (uc *MessageUseCase) List(ctx context.Context) ([]*message.Message, error) {
	return uc.repo.List(ctx)
}

func (uc *MessageUseCase) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*message.Message, error) {
	return uc.repo.SetRead(ctx, id, isRead)
}

func (uc *MessageUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.repo.Delete(ctx, id)
}

// NotifyUseCase handles message.received events in the worker.
type NotifyUseCase struct {
	logger logger.Logger
}

func NewNotifyUseCase(log logger.Logger) *NotifyUseCase {
	return &NotifyUseCase{logger: log}
}

func (uc *NotifyUseCase) Execute(_ context.Context, evt service.MessageReceivedEvent) error {
	uc.logger.Info("New contact message",
		zap.String("message_id", evt.MessageID.String()),
		zap.String("from", evt.Name),
		zap.String("email", evt.Email),
		zap.String("subject", evt.Subject),
	)
	return nil
}
