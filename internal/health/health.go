package health

import (
	"encoding/json"
	"net/http"
)

// SnapshotFunc возвращает срез готовности зависимостей
// (единственный писатель среза — супервизор подключений).
type SnapshotFunc func() map[string]bool

// Handler отдаёт состояние приложения и его зависимостей.
// Отвечает 200 всегда, даже когда зависимость лежит: само приложение
// живо, а флаги в теле говорят, что именно недоступно.
type Handler struct {
	snapshot SnapshotFunc
}

// NewHandler создаёт health handler поверх среза готовности.
func NewHandler(snapshot SnapshotFunc) *Handler {
	return &Handler{snapshot: snapshot}
}

// ServeHTTP обрабатывает GET /health.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{"app": "OK"}
	if h.snapshot != nil {
		for dep, ready := range h.snapshot() {
			payload[dep] = ready
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

// ReadinessHandler отвечает 200, только когда готовы все зависимости.
// Используется metrics-сервером как kubernetes readiness probe.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	if h.snapshot != nil {
		for _, ready := range h.snapshot() {
			if !ready {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler — простой liveness probe, всегда возвращает 200.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
