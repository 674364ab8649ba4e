package queue

import (
	"context"
	"encoding/json"

	"school-import-service/internal/config"
	"school-import-service/internal/model"

	"github.com/go-redis/redis/v8"
)

type Producer struct {
	client *redis.Client
	cfg    *config.Config
}

func NewProducer(redisClient *RedisClient, cfg *config.Config) *Producer {
	return &Producer{
		client: redisClient.Client(),
		cfg:    cfg,
	}
}

// EnqueueCredentialJob queues one credentials email for the notification
// worker. Callers treat failures as non-fatal: credential delivery is
// fire-and-forget.
func (p *Producer) EnqueueCredentialJob(ctx context.Context, job model.CredentialJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.client.LPush(ctx, p.cfg.Redis.CredentialQueue, data).Err()
}
