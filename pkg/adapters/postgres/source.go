package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
	"github.com/ruslano69/tdtp-rowmeta/pkg/retry"
)

// Compile-time check: Source должен реализовывать интерфейс adapters.Source
var _ adapters.Source = (*Source)(nil)

// Регистрация источника в глобальной фабрике
func init() {
	adapters.Register(schema.DialectPostgreSQL, func() adapters.Source {
		return NewSource()
	})
}

// Source - источник строк PostgreSQL через pgxpool
type Source struct {
	pool *pgxpool.Pool
	hook Hook
}

// NewSource создает неподключенный источник
func NewSource() *Source {
	return &Source{hook: Hook{Hook: base.NewHook(schema.DialectPostgreSQL)}}
}

// Connect устанавливает подключение к PostgreSQL
func (s *Source) Connect(ctx context.Context, cfg adapters.Config) error {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to parse connection string: %w", err))
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = int32(cfg.MaxConns)
	} else {
		config.MaxConns = 10
	}
	if cfg.MinConns > 0 {
		config.MinConns = int32(cfg.MinConns)
	} else {
		config.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.pool = pool
	return nil
}

// Pool возвращает *pgxpool.Pool для прямого доступа
func (s *Source) Pool() *pgxpool.Pool {
	return s.pool
}

// Query выполняет запрос и оборачивает результат в Cursor
func (s *Source) Query(ctx context.Context, query string, args ...any) (adapters.Rows, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("postgres: not connected")
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return NewCursor(rows), nil
}

// Exec выполняет запрос без результата
func (s *Source) Exec(ctx context.Context, query string, args ...any) error {
	if s.pool == nil {
		return fmt.Errorf("postgres: not connected")
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}

func (s *Source) Hook() schema.DialectHook { return s.hook }

// Close закрывает connection pool
func (s *Source) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
