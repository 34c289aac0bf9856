package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/metrics"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/readiness"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/account"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/orders"
)

type handlers struct {
	account *account.Service
	orders  *orders.Service
	counter domain.Counter
	status  StatusReporter
	metrics *metrics.ServiceMetrics
	logger  *log.Entry
}

// uniqueID выдаёт следующий анонимный идентификатор.
func (h *handlers) uniqueID(w http.ResponseWriter, r *http.Request) {
	value, err := h.counter.Next()
	if err != nil {
		h.storeError(w, readiness.DependencyRedis, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordIDIssued()
	}
	writeJSON(w, map[string]string{"uuid": fmt.Sprintf("anonymous-%d", value)})
}

// listUsers возвращает все учётные записи.
func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.account.List()
	if err != nil {
		h.storeError(w, readiness.DependencyPostgres, err)
		return
	}
	writeJSON(w, users)
}

// checkUser сообщает, существует ли пользователь.
func (h *handlers) checkUser(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]

	err := h.account.Check(name)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "OK")
	case errors.Is(err, domain.ErrUserNotFound):
		writeText(w, http.StatusNotFound, "user not found")
	default:
		h.storeError(w, readiness.DependencyPostgres, err)
	}
}

// register создаёт учётную запись.
func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeText(w, http.StatusBadRequest, "insufficient data")
		return
	}

	err := h.account.Register(payload.Name, payload.Password, payload.Email)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "OK")
	case domain.IsMissingField(err):
		writeText(w, http.StatusBadRequest, "insufficient data")
	case errors.Is(err, domain.ErrNameExists):
		writeText(w, http.StatusBadRequest, "name already exists")
	default:
		h.storeError(w, readiness.DependencyPostgres, err)
	}
}

// login проверяет учётные данные и возвращает запись пользователя.
// Неизвестное имя и неверный пароль дают разные тексты ответа.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeText(w, http.StatusBadRequest, "name or password not supplied")
		return
	}

	user, err := h.account.Login(payload.Name, payload.Password)
	switch {
	case err == nil:
		writeJSON(w, user)
	case domain.IsMissingField(err):
		writeText(w, http.StatusBadRequest, "name or password not supplied")
	case errors.Is(err, domain.ErrUserNotFound):
		writeText(w, http.StatusNotFound, "name not found")
	case errors.Is(err, domain.ErrWrongPassword):
		writeText(w, http.StatusNotFound, "incorrect password")
	default:
		h.storeError(w, readiness.DependencyPostgres, err)
	}
}

// createOrder дописывает заказ в историю пользователя.
// Тело запроса — непрозрачный JSON-документ заказа.
func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]

	var order json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeText(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	err := h.orders.Append(name, order)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "OK")
	case errors.Is(err, domain.ErrUserNotFound):
		writeText(w, http.StatusNotFound, "name not found")
	default:
		h.storeError(w, readiness.DependencyPostgres, err)
	}
}

// history возвращает документ истории заказов.
func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]

	history, err := h.orders.History(name)
	switch {
	case err == nil:
		writeJSON(w, history)
	case errors.Is(err, domain.ErrHistoryNotFound):
		writeText(w, http.StatusNotFound, "history not found")
	default:
		h.storeError(w, readiness.DependencyPostgres, err)
	}
}

// storeError обрабатывает неожиданную ошибку хранилища: логирует,
// подталкивает супервизор перепроверить соединение и отвечает 500.
func (h *handlers) storeError(w http.ResponseWriter, dep readiness.Dependency, err error) {
	h.logger.WithError(err).WithField("dependency", string(dep)).Error("store operation failed")
	if h.status != nil {
		h.status.MarkDown(dep, err)
	}
	writeText(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
