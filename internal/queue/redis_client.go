package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultQueueName is used when no queue name is configured.
const DefaultQueueName = "analysis:tasks"

// RedisQueue implements Client and Consumer over a redis list. Producers
// LPush; consumers BRPop, so delivery order is FIFO.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue constructs a RedisQueue for the given address.
func NewRedisQueue(addr, queueName string) *RedisQueue {
	if queueName == "" {
		queueName = DefaultQueueName
	}
	return &RedisQueue{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		queueName: queueName,
	}
}

// Send enqueues one message.
func (q *RedisQueue) Send(ctx context.Context, msg Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode queue message: %w", err)
	}
	if err := q.client.LPush(ctx, q.queueName, payload).Err(); err != nil {
		return fmt.Errorf("push queue message: %w", err)
	}
	return nil
}

// Receive blocks up to timeout for the next message. A nil message with
// nil error means the wait timed out.
func (q *RedisQueue) Receive(ctx context.Context, timeout time.Duration) (*Message, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("pop queue message: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	msg, err := DecodeMessage([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("decode queue message: %w", err)
	}
	return &msg, nil
}

// Length returns the number of pending messages.
func (q *RedisQueue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}

// Ping verifies connectivity to redis.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
