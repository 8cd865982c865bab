package mysql

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
	"github.com/ruslano69/tdtp-rowmeta/pkg/retry"
)

const driverMySQL = "mysql"

// Compile-time check: Source должен реализовывать интерфейс adapters.Source
var _ adapters.Source = (*Source)(nil)

func init() {
	// Регистрируем MySQL источник в фабрике
	adapters.Register(schema.DialectMySQL, func() adapters.Source {
		return NewSource()
	})
}

// Source - источник строк MySQL/MariaDB
type Source struct {
	base.SQLSource
}

// NewSource создает неподключенный источник
func NewSource() *Source {
	return &Source{SQLSource: base.SQLSource{
		Driver: driverMySQL,
		Types:  columnTypes,
		Normal: normalize,
		H:      Hook{Hook: base.NewHook(schema.DialectMySQL)},
	}}
}

// Connect проверяет DSN и подключается к MySQL
func (s *Source) Connect(ctx context.Context, cfg adapters.Config) error {
	dsn, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return retry.Permanent(fmt.Errorf("invalid MySQL DSN: %w", err))
	}
	// DATE/DATETIME приходят текстом и разбираются base.ToTime в UTC
	dsn.ParseTime = false

	cfg.DSN = dsn.FormatDSN()
	return s.SQLSource.Connect(ctx, cfg)
}
