// Пакет httpapi собирает HTTP-поверхность сервиса: маршруты,
// обработчики и привязку шлюза готовности к каждому маршруту.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/metrics"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/middleware"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/readiness"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/account"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/orders"
)

// StatusReporter расширяет проверку готовности возможностью сообщить
// супервизору о сбое операции с хранилищем (повторная проба по
// следующей неудачной операции).
type StatusReporter interface {
	middleware.ReadinessChecker
	MarkDown(dep readiness.Dependency, cause error)
}

// RouterDeps — зависимости HTTP-слоя.
type RouterDeps struct {
	Account *account.Service
	Orders  *orders.Service
	Counter domain.Counter
	Status  StatusReporter
	Health  http.Handler
	Metrics *metrics.ServiceMetrics
	Logger  *log.Entry
}

// NewRouter собирает маршруты сервиса. Каждый маршрут, зависящий от
// хранилища, объявляет свою зависимость; /health не гейтится вовсе.
func NewRouter(deps RouterDeps) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = log.WithField("component", "httpapi")
	}

	h := &handlers{
		account: deps.Account,
		orders:  deps.Orders,
		counter: deps.Counter,
		status:  deps.Status,
		metrics: deps.Metrics,
		logger:  logger,
	}

	router := mux.NewRouter()
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogging(logger))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	postgresGate := middleware.RequireReady(deps.Status, readiness.DependencyPostgres, deps.Metrics)
	redisGate := middleware.RequireReady(deps.Status, readiness.DependencyRedis, deps.Metrics)

	router.Handle("/health", deps.Health).Methods(http.MethodGet)
	router.Handle("/uniqueid", redisGate(http.HandlerFunc(h.uniqueID))).Methods(http.MethodGet)
	router.Handle("/users", postgresGate(http.HandlerFunc(h.listUsers))).Methods(http.MethodGet)
	router.Handle("/check/{id}", postgresGate(http.HandlerFunc(h.checkUser))).Methods(http.MethodGet)
	router.Handle("/register", postgresGate(http.HandlerFunc(h.register))).Methods(http.MethodPost)
	router.Handle("/login", postgresGate(http.HandlerFunc(h.login))).Methods(http.MethodPost)
	router.Handle("/order/{id}", postgresGate(http.HandlerFunc(h.createOrder))).Methods(http.MethodPost)
	router.Handle("/history/{id}", postgresGate(http.HandlerFunc(h.history))).Methods(http.MethodGet)

	// Preflight-запросы обслуживает CORS middleware.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	return router
}
