package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

func createIntegrationUser(t *testing.T, store *Store, name string) {
	t.Helper()
	repo := NewUserRepository(store)
	if err := repo.Create(domain.User{Name: name, Password: "pw", Email: name + "@example.com"}); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
}

func TestOrderHistoryRepositoryIntegration_AppendCreatesDocument(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	createIntegrationUser(t, store, "carol")
	repo := NewOrderHistoryRepository(store)

	if _, err := repo.Find("carol"); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Fatalf("expected ErrHistoryNotFound before first append, got %v", err)
	}

	order := json.RawMessage(`{"item":"widget","qty":2}`)
	if err := repo.Append("carol", order); err != nil {
		t.Fatalf("append: %v", err)
	}

	history, err := repo.Find("carol")
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if history.Name != "carol" || len(history.History) != 1 {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestOrderHistoryRepositoryIntegration_AppendPreservesOrder(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	createIntegrationUser(t, store, "dave")
	repo := NewOrderHistoryRepository(store)

	first := json.RawMessage(`{"seq":1}`)
	second := json.RawMessage(`{"seq":2}`)
	if err := repo.Append("dave", first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := repo.Append("dave", second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	history, err := repo.Find("dave")
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if len(history.History) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history.History))
	}

	var got struct {
		Seq int `json:"seq"`
	}
	if err := json.Unmarshal(history.History[0], &got); err != nil || got.Seq != 1 {
		t.Fatalf("expected first order seq=1, got %s (err=%v)", history.History[0], err)
	}
	if err := json.Unmarshal(history.History[1], &got); err != nil || got.Seq != 2 {
		t.Fatalf("expected second order seq=2, got %s (err=%v)", history.History[1], err)
	}
}

// Конкурентные дописывания по одному имени не должны терять обновления:
// атомарный upsert+append сериализуется самим хранилищем.
func TestOrderHistoryRepositoryIntegration_ConcurrentAppendsLoseNothing(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	createIntegrationUser(t, store, "erin")
	repo := NewOrderHistoryRepository(store)

	const workers = 20
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			order := json.RawMessage(fmt.Sprintf(`{"n":%d}`, n))
			if err := repo.Append("erin", order); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent append: %v", err)
	}

	history, err := repo.Find("erin")
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if len(history.History) != workers {
		t.Fatalf("lost updates: expected %d orders, got %d", workers, len(history.History))
	}

	seen := make(map[int]bool, workers)
	for _, raw := range history.History {
		var o struct {
			N int `json:"n"`
		}
		if err := json.Unmarshal(raw, &o); err != nil {
			t.Fatalf("decode order %s: %v", raw, err)
		}
		if seen[o.N] {
			t.Fatalf("duplicate order n=%d", o.N)
		}
		seen[o.N] = true
	}
}
