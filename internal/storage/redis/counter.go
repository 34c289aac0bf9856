package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// DefaultCounterKey — имя счётчика анонимных посетителей.
const DefaultCounterKey = "anonymous-counter"

const counterOpTimeout = 5 * time.Second

type counter struct {
	client *goredis.Client
	key    string
}

// NewCounter создаёт Redis-реализацию Counter поверх одного именованного
// ключа. INCR атомарен на стороне Redis, поэтому на этом уровне нет
// чтения-модификации-записи.
func NewCounter(store *Store, key string) domain.Counter {
	if key == "" {
		key = DefaultCounterKey
	}
	return &counter{client: store.Client(), key: key}
}

func (c *counter) Next() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), counterOpTimeout)
	defer cancel()

	value, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", c.key, err)
	}
	return value, nil
}

var _ domain.Counter = (*counter)(nil)
