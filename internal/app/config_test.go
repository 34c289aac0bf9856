package app

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("USERDB_HOST", "db.local")
	t.Setenv("USERDB_PORT", "5432")
	t.Setenv("USERDB_NAME", "users")
	t.Setenv("REDIS_HOST", "redis.local")
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected ListenAddr :8080, got %s", cfg.ListenAddr)
	}

	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected ListenAddr :8080, got %s", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.Redis.Addr() != "redis.local:6379" {
		t.Errorf("expected default redis port 6379, got %s", cfg.Redis.Addr())
	}
	if cfg.KafkaBrokers != "" {
		t.Errorf("expected empty KafkaBrokers, got %s", cfg.KafkaBrokers)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	for _, missing := range []string{"USERDB_HOST", "USERDB_PORT", "USERDB_NAME", "REDIS_HOST"} {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error when %s is not set", missing)
			} else if !strings.Contains(err.Error(), missing) {
				t.Errorf("error should name %s, got: %v", missing, err)
			}
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USER_SERVER_PORT", "8888")
	t.Setenv("METRICS_ADDR", ":9999")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8888" {
		t.Errorf("expected ListenAddr :8888, got %s", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != ":9999" {
		t.Errorf("expected MetricsAddr :9999, got %s", cfg.MetricsAddr)
	}
	if cfg.Redis.Addr() != "redis.local:6380" {
		t.Errorf("unexpected redis addr %s", cfg.Redis.Addr())
	}
	if cfg.KafkaBrokers != "k1:9092,k2:9092" {
		t.Errorf("unexpected KafkaBrokers %s", cfg.KafkaBrokers)
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	full := PostgresConfig{
		Host:     "db.local",
		Port:     "5432",
		Name:     "users",
		User:     "svc",
		Password: "secret",
		SSLMode:  "require",
	}
	got := full.DSN()
	want := "host=db.local port=5432 dbname=users user=svc password=secret sslmode=require"
	if got != want {
		t.Errorf("unexpected DSN:\n got  %s\n want %s", got, want)
	}

	minimal := PostgresConfig{Host: "db.local", Port: "5432", Name: "users"}
	got = minimal.DSN()
	want = "host=db.local port=5432 dbname=users sslmode=disable"
	if got != want {
		t.Errorf("unexpected DSN:\n got  %s\n want %s", got, want)
	}
}
