package mssql

import (
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

const driverSQLServer = "sqlserver"

// Compile-time check: Source должен реализовывать интерфейс adapters.Source
var _ adapters.Source = (*Source)(nil)

// Регистрация источника в глобальной фабрике
func init() {
	adapters.Register(schema.DialectMSSQL, func() adapters.Source {
		return NewSource()
	})
}

// Source - источник строк SQL Server
type Source struct {
	base.SQLSource
}

// NewSource создает неподключенный источник
func NewSource() *Source {
	return &Source{SQLSource: base.SQLSource{
		Driver: driverSQLServer,
		Types:  columnTypes,
		Normal: normalize,
		H:      Hook{Hook: base.NewHook(schema.DialectMSSQL)},
	}}
}
