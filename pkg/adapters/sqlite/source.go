package sqlite

import (
	"context"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

const driverSqlite = "sqlite"

// Compile-time check: Source должен реализовывать интерфейс adapters.Source
var _ adapters.Source = (*Source)(nil)

// Регистрация источника в глобальной фабрике
func init() {
	adapters.Register(schema.DialectSQLite, func() adapters.Source {
		return NewSource()
	})
}

// Source - источник строк SQLite (modernc.org/sqlite, без cgo)
type Source struct {
	base.SQLSource
}

// NewSource создает неподключенный источник
func NewSource() *Source {
	return &Source{SQLSource: base.SQLSource{
		Driver: driverSqlite,
		Types:  typeResolver{},
		H:      Hook{Hook: base.NewHook(schema.DialectSQLite)},
	}}
}

// Connect открывает БД и применяет PRAGMA
func (s *Source) Connect(ctx context.Context, cfg adapters.Config) error {
	if err := s.SQLSource.Connect(ctx, cfg); err != nil {
		return err
	}

	// У каждого подключения к :memory: своя БД - держим одно
	if isMemory(cfg.DSN) {
		s.DB().SetMaxOpenConns(1)
	}

	if err := s.applyPragmas(ctx, isMemory(cfg.DSN)); err != nil {
		s.Close()
		return fmt.Errorf("failed to apply PRAGMA: %w", err)
	}
	return nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// applyPragmas применяет PRAGMA для чтения больших выборок
func (s *Source) applyPragmas(ctx context.Context, memory bool) error {
	pragmas := []string{
		// Cache size: 64 MB кеша (по умолчанию ~2 MB)
		"PRAGMA cache_size = -64000",

		// Ждать блокировку вместо SQLITE_BUSY
		"PRAGMA busy_timeout = 5000",
	}
	if !memory {
		// WAL: читатели не блокируют писателей
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}

	for _, pragma := range pragmas {
		if err := s.Exec(ctx, pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}
