package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Сервис стартует без доступных хранилищ и останавливается по отмене
// контекста; супервизор продолжает попытки подключения в фоне.
func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.Postgres = PostgresConfig{Host: "127.0.0.1", Port: "5432", Name: "users"}
	cfg.Redis = RedisConfig{Host: "127.0.0.1"}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
