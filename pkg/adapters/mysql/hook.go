package mysql

import (
	"strings"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Hook - особенности MySQL:
//   - FLOAT/DOUBLE, у которых scale не меньше precision, теряют оба размера
//   - TINYINT(1) и BIT(1) - BOOLEAN, BIT(n) - BINARY
//   - длина BINARY берется из precision
type Hook struct {
	base.Hook
}

// isSingleBit: драйвер не сообщает длину колонки, поэтому смотрим на все источники размера
func isSingleBit(col schema.ColumnMeta) bool {
	if strings.HasSuffix(col.TypeName, "(1)") {
		return true
	}
	if col.DisplaySize > 1 || col.Precision > 1 {
		return false
	}
	return col.SQLType == schema.SQLBit || col.DisplaySize == 1 || col.Precision == 1
}

func (h Hook) MapSQLType(col schema.ColumnMeta) schema.TypeMapping {
	switch col.SQLType {
	case schema.SQLTinyInt:
		if isSingleBit(col) {
			return schema.TypeMapping{Type: schema.TypeBoolean, Length: -1, Precision: -1}
		}
	case schema.SQLBit:
		if !isSingleBit(col) {
			return schema.TypeMapping{Type: schema.TypeBinary, Length: h.ResolveBinaryLength(col), Precision: -1}
		}
	case schema.SQLFloat, schema.SQLReal, schema.SQLDouble:
		m := h.Hook.MapSQLType(col)
		if m.Precision >= m.Length {
			m.Length, m.Precision = -1, -1
		}
		return m
	}
	return h.Hook.MapSQLType(col)
}

func (h Hook) ResolveBinaryLength(col schema.ColumnMeta) int {
	if col.Precision > 0 {
		return col.Precision
	}
	return h.Hook.ResolveBinaryLength(col)
}
