package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/app"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(parseLogLevel(level))
}

// parseLogLevel разбирает LOG_LEVEL; неизвестное значение даёт info.
func parseLogLevel(level string) log.Level {
	if level == "" {
		return log.InfoLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

func main() {
	// .env удобен при локальной разработке; в кластере конфигурация
	// приходит из окружения контейнера.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация")
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"listen_addr":  cfg.ListenAddr,
		"metrics_addr": cfg.MetricsAddr,
		"build":        version.String(),
	}).Info("запускаем user service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("user service остановлен")
}
