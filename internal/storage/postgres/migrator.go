package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"
)

const (
	migrationLockKey = int64(77041102)

	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

//go:embed sql/migrations/*.sql
var migrationsFS embed.FS

var migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)

type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

// MigrateUp применяет up-миграции. steps=0 означает "все доступные".
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	return s.migrate(ctx, true, steps)
}

// MigrateDown откатывает миграции. steps<=0 трактуется как 1 шаг.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return s.migrate(ctx, false, steps)
}

// MigrationStatus возвращает текущую версию и количество применённых миграций.
func (s *Store) MigrationStatus(ctx context.Context) (int64, int, error) {
	if s == nil || s.db == nil {
		return 0, 0, fmt.Errorf("postgres store is not initialized")
	}

	queryCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(queryCtx, migrationTableDDL); err != nil {
		return 0, 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var version int64
	var count int
	err := s.db.QueryRowContext(queryCtx,
		`SELECT COALESCE(MAX(version), 0), COUNT(*) FROM schema_migrations`,
	).Scan(&version, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("read schema_migrations: %w", err)
	}
	return version, count, nil
}

func (s *Store) migrate(ctx context.Context, up bool, steps int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	conn, err := s.db.Conn(opCtx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Close()

	// Advisory lock защищает от параллельного применения миграций
	// несколькими экземплярами сервиса.
	if _, err := conn.ExecContext(opCtx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockKey)
	}()

	if _, err := conn.ExecContext(opCtx, migrationTableDDL); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied, err := appliedVersions(opCtx, conn)
	if err != nil {
		return err
	}

	if up {
		remaining := steps
		for _, m := range migrations {
			if applied[m.Version] {
				continue
			}
			err := applyInTx(opCtx, conn, m.UpSQL, func(tx *sql.Tx) error {
				_, execErr := tx.ExecContext(opCtx,
					`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
					m.Version, m.Name)
				return execErr
			})
			if err != nil {
				return fmt.Errorf("apply migration %d_%s: %w", m.Version, m.Name, err)
			}
			if steps > 0 {
				if remaining--; remaining == 0 {
					break
				}
			}
		}
		return nil
	}

	remaining := steps
	for i := len(migrations) - 1; i >= 0 && remaining > 0; i-- {
		m := migrations[i]
		if !applied[m.Version] {
			continue
		}
		err := applyInTx(opCtx, conn, m.DownSQL, func(tx *sql.Tx) error {
			_, execErr := tx.ExecContext(opCtx,
				`DELETE FROM schema_migrations WHERE version = $1`, m.Version)
			return execErr
		})
		if err != nil {
			return fmt.Errorf("rollback migration %d_%s: %w", m.Version, m.Name, err)
		}
		remaining--
	}
	return nil
}

// applyInTx выполняет SQL миграции и запись журнала в одной транзакции.
func applyInTx(ctx context.Context, conn *sql.Conn, migrationSQL string, journal func(*sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, migrationSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := journal(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("journal migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

func appliedVersions(ctx context.Context, conn *sql.Conn) (map[int64]bool, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return applied, nil
}

// loadMigrations собирает пары up/down файлов из встроенной директории.
func loadMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("sql/migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	byVersion := make(map[int64]*migration)
	for _, entry := range entries {
		name := entry.Name()
		match := migrationFilePattern.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("unexpected migration file name: %s", name)
		}

		version, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse migration version %s: %w", name, err)
		}

		content, err := migrationsFS.ReadFile(filepath.Join("sql/migrations", name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &migration{Version: version, Name: match[2]}
			byVersion[version] = m
		}
		if match[3] == "up" {
			m.UpSQL = string(content)
		} else {
			m.DownSQL = string(content)
		}
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" {
			return nil, fmt.Errorf("migration %d_%s has no up file", m.Version, m.Name)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}
