// Пакет redis оборачивает подключение к счётчику анонимных
// идентификаторов. Клиент подключается лениво; готовность публикует
// супервизор по результату Ping.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const defaultConnTimeout = 5 * time.Second

// Store оборачивает подключение к Redis.
type Store struct {
	client *goredis.Client
}

// New создаёт хэндл подключения. Сетевых обращений здесь нет.
func New(addr, password string) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Store{client: client}
}

// Client возвращает raw клиент, когда нужен низкоуровневый доступ.
func (s *Store) Client() *goredis.Client {
	return s.client
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close закрывает подключение.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
