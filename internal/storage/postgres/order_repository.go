package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

type orderHistoryRepository struct {
	db *sql.DB
}

// NewOrderHistoryRepository создаёт PostgreSQL-реализацию OrderHistoryRepository.
func NewOrderHistoryRepository(store *Store) domain.OrderHistoryRepository {
	return &orderHistoryRepository{db: store.DB()}
}

// Append дописывает заказ одной атомарной операцией upsert+append.
// Конкурентные Append по одному имени сериализуются на строке таблицы,
// поэтому потерянных обновлений не бывает, а порядок истории —
// порядок поступления в БД. Разные имена друг друга не блокируют.
func (r *orderHistoryRepository) Append(name string, order json.RawMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_histories (name, history, updated_at)
		VALUES ($1, jsonb_build_array($2::jsonb), NOW())
		ON CONFLICT (name) DO UPDATE
		SET history = order_histories.history || excluded.history,
		    updated_at = NOW()
	`, name, string(order))
	if err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}

func (r *orderHistoryRepository) Find(name string) (domain.OrderHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT history
		FROM order_histories
		WHERE name = $1
	`, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderHistory{}, domain.ErrHistoryNotFound
		}
		return domain.OrderHistory{}, fmt.Errorf("select order history: %w", err)
	}

	history := domain.OrderHistory{Name: name}
	if err := json.Unmarshal(raw, &history.History); err != nil {
		return domain.OrderHistory{}, fmt.Errorf("decode order history: %w", err)
	}
	return history, nil
}

var _ domain.OrderHistoryRepository = (*orderHistoryRepository)(nil)
