package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// MessageReader is the part of *kafka.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ErrSkip tells the consumer to commit a message it cannot process.
var ErrSkip = errors.New("skip message")

func NewReader(cfg config.Config, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Backoff bounds the wait between attempts at a message whose handler fails.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (b Backoff) next(prev time.Duration) time.Duration {
	if prev <= 0 {
		return b.Initial
	}
	d := prev * 2
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Consume decodes each message into T and hands it to handle until ctx ends.
// Undecodable messages and handler ErrSkip are committed and dropped. Any other
// handler error retries the same message with backoff and holds back the rest
// of the partition, so a commit never moves past unfinished work. If ctx ends
// mid-retry the message stays uncommitted and the group resumes from it.
func Consume[T any](ctx context.Context, r MessageReader, log logger.Logger, backoff Backoff, handle func(context.Context, T) error) error {
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		log.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		var payload T
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Error("Failed to unmarshal event, skipping", err, zap.String("topic", msg.Topic))
			commitMessage(ctx, r, msg, log)
			continue
		}

		if err := processUntilDone(ctx, msg, payload, log, backoff, handle); err != nil {
			log.Warn("Stopped before event was processed, leaving it uncommitted",
				zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset))
			return nil
		}

		commitMessage(ctx, r, msg, log)
	}
}

func processUntilDone[T any](ctx context.Context, msg kafka.Message, payload T, log logger.Logger, backoff Backoff, handle func(context.Context, T) error) error {
	var delay time.Duration
	for attempt := 1; ; attempt++ {
		err := handle(ctx, payload)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrSkip) {
			log.Warn("Dropping event", zap.String("topic", msg.Topic), zap.Error(err))
			return nil
		}

		delay = backoff.next(delay)
		log.Error("Failed to process event, retrying", err,
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func commitMessage(ctx context.Context, r MessageReader, msg kafka.Message, log logger.Logger) {
	if err := r.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err, zap.String("topic", msg.Topic))
	}
}
