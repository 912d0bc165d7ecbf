package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

// DispatchQueue is the redis-backed implementation of the services queue:
// jobs are pushed onto a list and popped by the worker loop.
type DispatchQueue interface {
	services.DispatchQueue
	StartConsumer(ctx context.Context, handle func(ctx context.Context, job services.DispatchJob)) error
	Close() error
}

type dispatchQueue struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
}

func NewDispatchQueue(log *logger.Logger) (DispatchQueue, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	key := strings.TrimSpace(os.Getenv("REDIS_DISPATCH_KEY"))
	if key == "" {
		key = "dispatch:announcements"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &dispatchQueue{
		log: log.With("client", "RedisDispatchQueue"),
		rdb: rdb,
		key: key,
	}, nil
}

func (q *dispatchQueue) Enqueue(ctx context.Context, job services.DispatchJob) error {
	if q == nil || q.rdb == nil {
		return fmt.Errorf("dispatch queue not initialized")
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, raw).Err()
}

// StartConsumer blocks until ctx is cancelled, handing each popped job to
// handle. Malformed payloads are logged and dropped.
func (q *dispatchQueue) StartConsumer(ctx context.Context, handle func(ctx context.Context, job services.DispatchJob)) error {
	if q == nil || q.rdb == nil {
		return fmt.Errorf("dispatch queue not initialized")
	}

	for {
		res, err := q.rdb.BRPop(ctx, 5*time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			q.log.Warn("dispatch queue pop failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		if len(res) < 2 {
			continue
		}

		var job services.DispatchJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			q.log.Error("dropping malformed dispatch job", "error", err)
			continue
		}
		handle(ctx, job)
	}
}

func (q *dispatchQueue) Close() error {
	if q == nil || q.rdb == nil {
		return nil
	}
	return q.rdb.Close()
}
