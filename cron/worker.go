package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hairbook/config"
	"hairbook/services/rating"
	"hairbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeRatingRecompute = "rating:recompute"

// RecomputePayload is the body of a rating recompute task.
type RecomputePayload struct {
	ShopID string `json:"shopId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewRecomputeTask builds the task for a shop. Duplicate tasks for the same shop are harmless
// since a recompute always starts from scratch.
func NewRecomputeTask(shopID string) (*asynq.Task, error) {
	b, err := json.Marshal(RecomputePayload{ShopID: shopID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRatingRecompute, b, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)), nil
}

// RecomputeQueue enqueues rating recomputes on the asynq queue.
type RecomputeQueue struct {
	client *asynq.Client
}

func NewRecomputeQueue() *RecomputeQueue {
	return &RecomputeQueue{client: asynq.NewClient(redisOpts())}
}

func (q *RecomputeQueue) EnqueueRecompute(ctx context.Context, shopID string) error {
	task, err := NewRecomputeTask(shopID)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue rating recompute: %w", err)
	}
	return nil
}

func (q *RecomputeQueue) Close() error {
	return q.client.Close()
}

// Recomputer is what the worker calls for every task.
type Recomputer interface {
	Recompute(ctx context.Context, shopID string) (float64, error)
}

// InitRatingWorker runs the rating worker in background and returns the server so it can be shut down.
func InitRatingWorker(agg *rating.Aggregator) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingRecompute, handleRatingTask(agg))

	go func() {
		logger.Info("Starting rating worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Rating worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("Rating worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleRatingTask(agg Recomputer) asynq.HandlerFunc {
	logger := utils.GetLogger()
	return func(ctx context.Context, task *asynq.Task) error {
		var p RecomputePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid rating payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.ShopID == "" {
			return fmt.Errorf("missing shopId: %w", asynq.SkipRetry)
		}

		value, err := agg.Recompute(ctx, p.ShopID)
		if err != nil {
			if utils.IsKind(err, utils.KindNotFound) {
				// The shop was deleted after the task was queued.
				logger.Info("Skipping rating recompute for missing shop", zap.String("shopId", p.ShopID))
				return nil
			}
			logger.Error("Rating recompute failed", zap.String("shopId", p.ShopID), zap.Error(err))
			return err
		}
		logger.Debug("Rating recomputed", zap.String("shopId", p.ShopID), zap.Float64("rating", value))
		return nil
	}
}
