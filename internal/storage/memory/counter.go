package memory

import (
	"sync/atomic"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// counterInMemory — атомарный in-memory счётчик.
type counterInMemory struct {
	value atomic.Int64
}

// NewCounter возвращает in-memory счётчик для локальной разработки и тестов.
func NewCounter() domain.Counter {
	return &counterInMemory{}
}

func (c *counterInMemory) Next() (int64, error) {
	return c.value.Add(1), nil
}

var _ domain.Counter = (*counterInMemory)(nil)
