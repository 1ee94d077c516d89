package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-api/adapters/event"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	messageUC "github.com/khoahotran/portfolio-api/internal/application/usecase/message"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
)

var retryBackoff = event.Backoff{Initial: time.Second, Max: time.Minute}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env).With(zap.String("component", "worker"))
	defer appLogger.Sync()

	appLogger.Info("Starting Portfolio Worker...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg.Jaeger.OTLPEndpoint, "portfolio-worker", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	mediaStore, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media store", err)
	}

	cleanupOrphan := asset.NewCleanupOrphanUseCase(mediaStore, appLogger)
	notify := messageUC.NewNotifyUseCase(appLogger)

	mediaReader := event.NewReader(cfg, cfg.Kafka.MediaTopic)
	defer mediaReader.Close()
	messageReader := event.NewReader(cfg, cfg.Kafka.MessageTopic)
	defer messageReader.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.MediaTopic))
		return event.Consume(gctx, mediaReader, appLogger, retryBackoff, handleMediaEvent(cleanupOrphan))
	})

	g.Go(func() error {
		appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.MessageTopic))
		return event.Consume(gctx, messageReader, appLogger, retryBackoff, handleMessageEvent(notify))
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Worker stopped with error", err)
		return
	}
	appLogger.Info("Worker exited")
}

// handleMediaEvent deletes orphaned images. A failed delete is returned so the
// consumer retries the same event.
func handleMediaEvent(cleanup *asset.CleanupOrphanUseCase) func(context.Context, service.MediaOrphanedEvent) error {
	return func(ctx context.Context, evt service.MediaOrphanedEvent) error {
		if evt.EventType != service.MediaEventTypeOrphaned {
			return fmt.Errorf("%w: unknown media event type %q", event.ErrSkip, evt.EventType)
		}
		return cleanup.Execute(ctx, evt)
	}
}

func handleMessageEvent(notify *messageUC.NotifyUseCase) func(context.Context, service.MessageReceivedEvent) error {
	return func(ctx context.Context, evt service.MessageReceivedEvent) error {
		if evt.EventType != service.MessageEventTypeReceived {
			return fmt.Errorf("%w: unknown message event type %q", event.ErrSkip, evt.EventType)
		}
		return notify.Execute(ctx, evt)
	}
}
