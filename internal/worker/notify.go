package worker

import (
	"context"
	"encoding/json"

	"school-import-service/internal/config"
	"school-import-service/internal/logger"
	"school-import-service/internal/model"
	"school-import-service/internal/notify"
	"school-import-service/internal/queue"

	"github.com/rs/zerolog"
)

// NotificationWorker consumes credential jobs and delivers account emails.
// Each notification is independent and off the critical path, so delivery
// fans out through the worker pool and failures are only logged.
type NotificationWorker struct {
	cfg        *config.Config
	mailer     notify.Mailer
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewNotificationWorker(
	cfg *config.Config,
	mailer notify.Mailer,
	redisClient *queue.RedisClient,
) *NotificationWorker {
	return &NotificationWorker{
		cfg:        cfg,
		mailer:     mailer,
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Notify.Count),
		log:        logger.Get(),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting notification worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeCredentialQueue(ctx, w.handleMessage)
}

func (w *NotificationWorker) Stop() {
	w.log.Info().Msg("Stopping notification worker")
	w.workerPool.Stop()
}

func (w *NotificationWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.CredentialJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal credential job")
		return err
	}

	w.workerPool.Submit(func(ctx context.Context) error {
		msg := notify.CredentialsEmail(job)
		if err := w.mailer.Send(ctx, msg); err != nil {
			w.log.Error().Err(err).Str("email", job.Email).Msg("Failed to send credentials email")
			return err
		}
		w.log.Info().Str("email", job.Email).Str("user_type", job.UserType).Msg("Credentials email delivered")
		return nil
	})

	return nil
}
