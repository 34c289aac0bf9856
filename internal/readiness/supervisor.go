// Пакет readiness отвечает за установление соединений с внешними
// хранилищами и публикацию флагов готовности. Супервизор — единственный
// писатель этих флагов; обработчики запросов их только читают.
package readiness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultRetryDelay — фиксированная пауза между попытками подключения.
const DefaultRetryDelay = 2 * time.Second

// Dependency идентифицирует внешнюю зависимость сервиса.
type Dependency string

const (
	// DependencyPostgres — документное хранилище (пользователи и истории заказов).
	DependencyPostgres Dependency = "postgres"
	// DependencyRedis — счётчик анонимных идентификаторов.
	DependencyRedis Dependency = "redis"
)

// ProbeFunc пытается установить/проверить соединение с зависимостью.
type ProbeFunc func(ctx context.Context) error

// HookFunc выполняется один раз после успешной пробы, до публикации
// готовности (например, применение схемы БД). Ошибка хука трактуется
// как неудачная попытка подключения.
type HookFunc func(ctx context.Context) error

type depState struct {
	probe   ProbeFunc
	onReady HookFunc

	ready   atomic.Bool
	probing atomic.Bool
}

// Supervisor владеет состоянием готовности всех зависимостей и
// переподключается к ним в фоне с фиксированной задержкой, без
// ограничения числа попыток.
type Supervisor struct {
	logger     *log.Entry
	retryDelay time.Duration

	mu           sync.Mutex
	deps         map[Dependency]*depState
	order        []Dependency
	ctx          context.Context
	started      bool
	onTransition func(dep Dependency, ready bool)
}

// New создаёт супервизор с заданной паузой между попытками.
func New(logger *log.Entry, retryDelay time.Duration) *Supervisor {
	if logger == nil {
		logger = log.WithField("component", "readiness")
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Supervisor{
		logger:     logger,
		retryDelay: retryDelay,
		deps:       make(map[Dependency]*depState),
	}
}

// OnTransition регистрирует обработчик смены флага готовности
// (используется для метрик). Вызывать до Start.
func (s *Supervisor) OnTransition(fn func(dep Dependency, ready bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTransition = fn
}

// Register добавляет зависимость. onReady может быть nil.
// Вызывать до Start.
func (s *Supervisor) Register(dep Dependency, probe ProbeFunc, onReady HookFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.deps[dep]; exists {
		return
	}
	s.deps[dep] = &depState{probe: probe, onReady: onReady}
	s.order = append(s.order, dep)
}

// Start запускает по фоновой горутине на каждую зависимость.
// Повторный вызов игнорируется.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.ctx = ctx

	for dep, st := range s.deps {
		st.probing.Store(true)
		go s.connectLoop(ctx, dep, st)
	}
}

// connectLoop пробует подключиться, пока не получится или пока не
// отменён контекст. Успех публикует ready=true и завершает цикл;
// повторный вход происходит только через MarkDown.
func (s *Supervisor) connectLoop(ctx context.Context, dep Dependency, st *depState) {
	logger := s.logger.WithField("dependency", string(dep))

	for {
		err := st.probe(ctx)
		if err == nil && st.onReady != nil {
			err = st.onReady(ctx)
		}
		if err == nil {
			// Флаг probing снимается ДО публикации готовности: MarkDown,
			// совпавший с моментом публикации (неудачная операция
			// хранилища или вызов из колбэка перехода), обязан увидеть
			// probing=false и запустить новый цикл.
			st.probing.Store(false)
			st.ready.Store(true)
			s.notify(dep, true)
			logger.Info("dependency connected")
			return
		}

		logger.WithError(err).Error("dependency connection failed, will retry")
		select {
		case <-ctx.Done():
			st.probing.Store(false)
			return
		case <-time.After(s.retryDelay):
		}
	}
}

// MarkDown сообщает супервизору о потере соединения, обнаруженной
// во время операции с хранилищем. Флаг сбрасывается, и цикл
// подключения запускается заново (переход Ready -> Reconnecting).
// Конкурентные вызовы схлопываются в один цикл.
func (s *Supervisor) MarkDown(dep Dependency, cause error) {
	s.mu.Lock()
	st, ok := s.deps[dep]
	ctx, started := s.ctx, s.started
	s.mu.Unlock()
	if !ok || !started {
		return
	}

	if st.ready.CompareAndSwap(true, false) {
		s.notify(dep, false)
		s.logger.WithField("dependency", string(dep)).
			WithError(cause).
			Warn("dependency marked down, reconnecting")
	}
	if st.probing.CompareAndSwap(false, true) {
		go s.connectLoop(ctx, dep, st)
	}
}

// Ready возвращает текущий флаг готовности зависимости.
// Незнакомая зависимость считается неготовой.
func (s *Supervisor) Ready(dep Dependency) bool {
	s.mu.Lock()
	st, ok := s.deps[dep]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return st.ready.Load()
}

// Snapshot возвращает неизменяемый срез готовности всех зависимостей
// для health-эндпоинта.
func (s *Supervisor) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]bool, len(s.deps))
	for _, dep := range s.order {
		snapshot[string(dep)] = s.deps[dep].ready.Load()
	}
	return snapshot
}

func (s *Supervisor) notify(dep Dependency, ready bool) {
	s.mu.Lock()
	fn := s.onTransition
	s.mu.Unlock()
	if fn != nil {
		fn(dep, ready)
	}
}
