package sqlite

import (
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Hook - особенности SQLite.
// Драйвер не различает время суток и дату: TIME читается аксессором Date.
type Hook struct {
	base.Hook
}

func (h Hook) ChooseAccessor(col schema.ColumnMeta, t schema.SemanticType) schema.Accessor {
	if schema.IsTemporalType(t) && (col.SQLType == schema.SQLTime || col.SQLType == schema.SQLTimeTZ) {
		return schema.AccessorDate
	}
	return h.Hook.ChooseAccessor(col, t)
}
