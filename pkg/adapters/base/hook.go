package base

import (
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Compile-time check: Hook реализует schema.DialectHook
var _ schema.DialectHook = Hook{}

// Hook - хук диалекта с поведением по умолчанию.
// Диалекты встраивают его и переопределяют только свои особенности.
type Hook struct {
	D schema.Dialect
}

// NewHook создает хук по умолчанию для диалекта
func NewHook(d schema.Dialect) Hook { return Hook{D: d} }

func (h Hook) Dialect() schema.Dialect { return h.D }

func (Hook) MapSQLType(col schema.ColumnMeta) schema.TypeMapping {
	return schema.DefaultTypeMapping(col)
}

func (Hook) ResolveBinaryLength(col schema.ColumnMeta) int {
	return schema.DefaultBinaryLength(col)
}

func (Hook) ChooseAccessor(col schema.ColumnMeta, t schema.SemanticType) schema.Accessor {
	return schema.DefaultAccessor(col, t)
}
