// Пакет middleware содержит HTTP-промежуточные обработчики сервиса:
// шлюз готовности зависимостей, CORS, логирование и метрики запросов.
package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/metrics"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/readiness"
)

// ReadinessChecker читает флаги готовности зависимостей.
// Реализуется супервизором подключений.
type ReadinessChecker interface {
	Ready(dep readiness.Dependency) bool
}

// RequireReady отклоняет запрос кодом 503 до любого обращения к
// хранилищу, если требуемая маршрутом зависимость не готова.
// Чистый предикат: побочных эффектов, очередей и повторов нет.
func RequireReady(checker ReadinessChecker, dep readiness.Dependency, serviceMetrics *metrics.ServiceMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.Ready(dep) {
				if serviceMetrics != nil {
					serviceMetrics.RecordGateRejection(string(dep))
				}
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("database not available"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
