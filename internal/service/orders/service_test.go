package orders_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/orders"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/memory"
)

// recordingPublisher запоминает опубликованные события.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (p *recordingPublisher) OrderAppended(name string, order json.RawMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, name+":"+string(order))
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	users     domain.UserRepository
	histories domain.OrderHistoryRepository
	publisher *recordingPublisher
	svc       *orders.Service
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	f := &fixture{
		users:     memory.NewUserRepository(),
		histories: memory.NewOrderHistoryRepository(),
		publisher: &recordingPublisher{},
	}
	for _, name := range names {
		require.NoError(t, f.users.Create(domain.User{Name: name, Password: "pw", Email: name + "@example.com"}))
	}
	f.svc = orders.New(f.users, f.histories, f.publisher, nil, nil)
	return f
}

func TestAppendUnknownUserCreatesNothing(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Append("ghost", json.RawMessage(`{"item":"x"}`))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.histories.Find("ghost")
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
	assert.Empty(t, f.publisher.published())
}

func TestSequentialAppendsKeepFIFOOrder(t *testing.T) {
	f := newFixture(t, "alice")

	o1 := json.RawMessage(`{"seq":1}`)
	o2 := json.RawMessage(`{"seq":2}`)
	require.NoError(t, f.svc.Append("alice", o1))
	require.NoError(t, f.svc.Append("alice", o2))

	history, err := f.svc.History("alice")
	require.NoError(t, err)
	require.Len(t, history.History, 2)
	assert.JSONEq(t, `{"seq":1}`, string(history.History[0]))
	assert.JSONEq(t, `{"seq":2}`, string(history.History[1]))
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	f := newFixture(t, "alice")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			order := json.RawMessage(fmt.Sprintf(`{"n":%d}`, n))
			assert.NoError(t, f.svc.Append("alice", order))
		}(i)
	}
	wg.Wait()

	history, err := f.svc.History("alice")
	require.NoError(t, err)
	require.Len(t, history.History, workers)

	seen := make(map[int]bool, workers)
	for _, raw := range history.History {
		var o struct {
			N int `json:"n"`
		}
		require.NoError(t, json.Unmarshal(raw, &o))
		assert.False(t, seen[o.N], "duplicate order n=%d", o.N)
		seen[o.N] = true
	}
}

func TestHistoryForUserWithoutOrders(t *testing.T) {
	f := newFixture(t, "alice")

	_, err := f.svc.History("alice")
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestAppendPublishesEvent(t *testing.T) {
	f := newFixture(t, "alice")

	require.NoError(t, f.svc.Append("alice", json.RawMessage(`{"item":"x"}`)))

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, `alice:{"item":"x"}`, events[0])
}

func TestPublishFailureDoesNotFailAppend(t *testing.T) {
	f := newFixture(t, "alice")
	f.publisher.fail = true

	require.NoError(t, f.svc.Append("alice", json.RawMessage(`{"item":"x"}`)))

	history, err := f.svc.History("alice")
	require.NoError(t, err)
	assert.Len(t, history.History, 1)
}

func TestAppendWithoutPublisher(t *testing.T) {
	f := newFixture(t, "alice")
	f.svc = orders.New(f.users, f.histories, nil, nil, nil)

	require.NoError(t, f.svc.Append("alice", json.RawMessage(`{"item":"x"}`)))
}
