package base

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// SQLSource - общая реализация adapters.Source поверх database/sql.
// Диалекты (SQLite, MySQL, MS SQL) встраивают ее и задают драйвер, таблицу типов и хук.
type SQLSource struct {
	Driver string
	Types  TypeResolver
	Normal ValueFunc
	H      schema.DialectHook

	db *sql.DB
}

// Connect открывает пул и проверяет подключение
func (s *SQLSource) Connect(ctx context.Context, cfg adapters.Config) error {
	db, err := sql.Open(s.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(cfg.MinConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return nil
}

// DB возвращает пул подключений (nil до Connect)
func (s *SQLSource) DB() *sql.DB { return s.db }

// Query выполняет запрос и оборачивает результат в RowsCursor
func (s *SQLSource) Query(ctx context.Context, query string, args ...any) (adapters.Rows, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%s: not connected", s.Driver)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	cur, err := NewRowsCursor(rows, s.Types, s.Normal)
	if err != nil {
		rows.Close()
		return nil, err
	}
	return cur, nil
}

// Exec выполняет запрос без результата
func (s *SQLSource) Exec(ctx context.Context, query string, args ...any) error {
	if s.db == nil {
		return fmt.Errorf("%s: not connected", s.Driver)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}

func (s *SQLSource) Hook() schema.DialectHook { return s.H }

// Close закрывает пул
func (s *SQLSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
