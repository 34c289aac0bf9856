package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/health"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/metrics"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/readiness"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/account"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/orders"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/postgres"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/redis"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/transport/httpapi"
)

// Run запускает сервис и блокируется до отмены контекста или фатальной
// ошибки HTTP-сервера. Подключение к хранилищам происходит в фоне:
// сервер принимает запросы сразу, а шлюз готовности отвечает 503,
// пока зависимость маршрута не установлена.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	serviceMetrics := metrics.NewServiceMetrics()

	pgStore, err := postgres.New(cfg.Postgres.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := pgStore.Close(); err != nil {
			logger.WithError(err).Warn("failed to close postgres store")
		}
	}()

	redisStore := redis.New(cfg.Redis.Addr(), cfg.Redis.Password)
	defer func() {
		if err := redisStore.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis store")
		}
	}()

	supervisor := readiness.New(
		logger.WithField("layer", "readiness"),
		readiness.DefaultRetryDelay,
	)
	supervisor.OnTransition(func(dep readiness.Dependency, ready bool) {
		serviceMetrics.SetDependencyUp(string(dep), ready)
	})
	supervisor.Register(readiness.DependencyPostgres, pgStore.Ping, pgStore.EnsureSchema)
	supervisor.Register(readiness.DependencyRedis, redisStore.Ping, nil)
	supervisor.Start(ctx)

	// Kafka опциональна: без брокеров события просто не публикуются.
	publishing := initEventPublishing(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
	defer publishing.Close(logger)

	deps := newStoreDependencies(pgStore, redisStore, logger)

	orderSvc := orders.New(
		deps.Users,
		deps.Histories,
		publishing.Orders,
		serviceMetrics,
		logger.WithField("layer", "orders"),
	)
	accountSvc := account.New(
		deps.Users,
		publishing.Users,
		logger.WithField("layer", "account"),
	)

	healthHandler := health.NewHandler(supervisor.Snapshot)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Account: accountSvc,
		Orders:  orderSvc,
		Counter: deps.Counter,
		Status:  supervisor,
		Health:  healthHandler,
		Metrics: serviceMetrics,
		Logger:  logger.WithField("layer", "http"),
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP сервер слушает %s", cfg.ListenAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает служебный HTTP-сервер: метрики
// Prometheus и пробы kubernetes.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
