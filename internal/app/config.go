// Пакет app собирает сервис из частей: конфигурация из окружения,
// подключения к хранилищам, супервизор готовности, HTTP-серверы.
package app

import (
	"fmt"
	"os"
	"strings"
)

// Значения по умолчанию для необязательных параметров окружения.
const (
	DefaultListenPort  = "8080"
	DefaultMetricsAddr = ":9090"
	DefaultRedisPort   = "6379"
	DefaultSSLMode     = "disable"
)

// PostgresConfig — параметры подключения к документному хранилищу.
type PostgresConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN собирает строку подключения в keyword-форме.
func (c PostgresConfig) DSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"dbname=" + c.Name,
	}
	if c.User != "" {
		parts = append(parts, "user="+c.User)
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = DefaultSSLMode
	}
	parts = append(parts, "sslmode="+sslMode)
	return strings.Join(parts, " ")
}

// RedisConfig — параметры подключения к счётчику.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr возвращает адрес в форме host:port.
func (c RedisConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = DefaultRedisPort
	}
	return c.Host + ":" + port
}

// Config описывает настройки запуска приложения.
type Config struct {
	ListenAddr  string
	MetricsAddr string

	Postgres PostgresConfig
	Redis    RedisConfig

	// KafkaBrokers — список брокеров через запятую; пустая строка
	// отключает публикацию событий.
	KafkaBrokers string
	// KafkaOrderTopic переопределяет топик событий заказов.
	KafkaOrderTopic string

	LogLevel string
}

// DefaultConfig возвращает базовые адреса серверов.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  ":" + DefaultListenPort,
		MetricsAddr: DefaultMetricsAddr,
	}
}

// LoadConfig читает конфигурацию из переменных окружения. Отсутствие
// обязательных параметров хранилищ — фатальная ошибка конфигурации:
// без них сервис не сможет стать готовым никогда.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.Postgres = PostgresConfig{
		Host:     os.Getenv("USERDB_HOST"),
		Port:     os.Getenv("USERDB_PORT"),
		Name:     os.Getenv("USERDB_NAME"),
		User:     os.Getenv("USERDB_USER"),
		Password: os.Getenv("USERDB_PASSWORD"),
		SSLMode:  os.Getenv("USERDB_SSLMODE"),
	}
	for _, required := range []struct {
		name, value string
	}{
		{"USERDB_HOST", cfg.Postgres.Host},
		{"USERDB_PORT", cfg.Postgres.Port},
		{"USERDB_NAME", cfg.Postgres.Name},
	} {
		if required.value == "" {
			return Config{}, fmt.Errorf("required environment variable %s is not set", required.name)
		}
	}

	cfg.Redis = RedisConfig{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Redis.Host == "" {
		return Config{}, fmt.Errorf("required environment variable REDIS_HOST is not set")
	}

	if port := os.Getenv("USER_SERVER_PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.MetricsAddr = addr
	}

	cfg.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	cfg.KafkaOrderTopic = os.Getenv("KAFKA_ORDER_TOPIC")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")

	return cfg, nil
}
