package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/memory"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/postgres"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/redis"
)

// Dependencies содержит хранилища сервиса.
type Dependencies struct {
	Users     domain.UserRepository
	Histories domain.OrderHistoryRepository
	Counter   domain.Counter
	Logger    *log.Entry
}

// newStoreDependencies создаёт зависимости на Postgres и Redis —
// боевой набор, который использует Run.
func newStoreDependencies(pgStore *postgres.Store, redisStore *redis.Store, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Users:     postgres.NewUserRepository(pgStore),
		Histories: postgres.NewOrderHistoryRepository(pgStore),
		Counter:   redis.NewCounter(redisStore, redis.DefaultCounterKey),
		Logger:    logger,
	}
}

// NewMemoryDependencies создаёт зависимости на хранилищах в памяти.
// Используется в тестах и для локальной разработки без Postgres/Redis.
func NewMemoryDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Users:     memory.NewUserRepository(),
		Histories: memory.NewOrderHistoryRepository(),
		Counter:   memory.NewCounter(),
		Logger:    logger,
	}
}
