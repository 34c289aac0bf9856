package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics содержит метрики HTTP-слоя и доменных операций.
type ServiceMetrics struct {
	// HTTP-запросы
	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	// Отказы шлюза готовности (запрос отклонён до обращения к хранилищу)
	gateRejections *prometheus.CounterVec

	// Доменные счётчики
	ordersAppended prometheus.Counter
	idsIssued      prometheus.Counter

	// Готовность зависимостей
	dependencyUp *prometheus.GaugeVec
}

// NewServiceMetrics создаёт и регистрирует метрики в DefaultRegisterer.
func NewServiceMetrics() *ServiceMetrics {
	return newServiceMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newServiceMetricsWithRegisterer(registerer prometheus.Registerer) *ServiceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ServiceMetrics{
		httpRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "user_http_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"method", "path", "status"}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "user_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path"}),
		gateRejections: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "user_gate_rejections_total",
			Help: "Total number of requests rejected because a dependency was not ready",
		}, []string{"dependency"}),
		ordersAppended: registerCounter(registerer, prometheus.CounterOpts{
			Name: "user_orders_appended_total",
			Help: "Total number of orders appended to customer histories",
		}),
		idsIssued: registerCounter(registerer, prometheus.CounterOpts{
			Name: "user_anonymous_ids_issued_total",
			Help: "Total number of anonymous visitor ids issued",
		}),
		dependencyUp: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "user_dependency_up",
			Help: "Whether a dependency connection is established (1) or not (0)",
		}, []string{"dependency"}),
	}
}

// RecordHTTPRequest учитывает обработанный HTTP-запрос.
func (m *ServiceMetrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGateRejection учитывает отказ шлюза готовности.
func (m *ServiceMetrics) RecordGateRejection(dependency string) {
	m.gateRejections.WithLabelValues(dependency).Inc()
}

// RecordOrderAppended увеличивает счётчик дописанных заказов.
func (m *ServiceMetrics) RecordOrderAppended() {
	m.ordersAppended.Inc()
}

// RecordIDIssued увеличивает счётчик выданных анонимных идентификаторов.
func (m *ServiceMetrics) RecordIDIssued() {
	m.idsIssued.Inc()
}

// SetDependencyUp публикует флаг готовности зависимости.
func (m *ServiceMetrics) SetDependencyUp(dependency string, up bool) {
	value := 0.0
	if up {
		value = 1.0
	}
	m.dependencyUp.WithLabelValues(dependency).Set(value)
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
