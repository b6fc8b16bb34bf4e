// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list (queue) name for table action logs.
const DefaultQueueName = "contracts_actions"

// ConnectRedis creates a client for addr/db and pings it.
func ConnectRedis(addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Publisher pushes action records onto the historian queue.
type Publisher struct {
	rdb   redis.Cmdable
	queue string
}

func NewPublisher(rdb redis.Cmdable, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Publisher{rdb: rdb, queue: queue}
}

// Publish serializes the record to JSON and pushes it to the queue.
func (p *Publisher) Publish(ctx context.Context, record models.ActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// Hook adapts Publish to a table action hook. Publish failures are logged and
// never reach the table.
func (p *Publisher) Hook(ctx context.Context, logger logrus.FieldLogger) func(models.ActionRecord) {
	return func(rec models.ActionRecord) {
		if err := p.Publish(ctx, rec); err != nil {
			logger.WithError(err).WithField("action", rec.ActionType).Warn("Failed to publish action")
		}
	}
}

// Queue pops action records pushed by a Publisher.
type Queue struct {
	rdb   redis.Cmdable
	queue string
}

func NewQueue(rdb redis.Cmdable, queue string) *Queue {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Queue{rdb: rdb, queue: queue}
}

// Name is the Redis list the queue reads.
func (q *Queue) Name() string { return q.queue }

// Pop blocks up to timeout for the next record. It returns nil, nil when the
// queue stayed empty.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*models.ActionRecord, error) {
	res, err := q.rdb.BLPop(ctx, timeout, q.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", q.queue, err)
	}
	if len(res) < 2 {
		return nil, nil
	}

	// res[0] is the queue name and res[1] the payload.
	var record models.ActionRecord
	if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
		return nil, fmt.Errorf("invalid action record: %w", err)
	}
	return &record, nil
}
