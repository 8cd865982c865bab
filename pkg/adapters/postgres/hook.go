package postgres

import (
	"strings"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Hook - особенности PostgreSQL:
//   - float8 (precision/scale 17) остается NUMBER без размеров, а не BIGNUMBER
//   - inet/cidr - INTERNET_ADDRESS
//   - numeric без модификатора - BIGNUMBER без размеров
//   - uuid - STRING(36), bit(1) - BOOLEAN, bit(n) - STRING(n)
type Hook struct {
	base.Hook
}

func (h Hook) MapSQLType(col schema.ColumnMeta) schema.TypeMapping {
	switch strings.ToLower(col.TypeName) {
	case "inet", "cidr":
		return schema.TypeMapping{Type: schema.TypeInternetAddress, Length: -1, Precision: -1}
	case "uuid":
		return schema.TypeMapping{Type: schema.TypeString, Length: 36, Precision: -1}
	}

	switch col.SQLType {
	case schema.SQLDouble:
		if col.Precision >= 16 && col.Scale >= 16 {
			return schema.TypeMapping{Type: schema.TypeNumber, Length: -1, Precision: -1}
		}
	case schema.SQLNumeric, schema.SQLDecimal:
		if col.Precision <= 0 {
			return schema.TypeMapping{Type: schema.TypeBigNumber, Length: -1, Precision: -1}
		}
	case schema.SQLBit:
		if col.DisplaySize > 1 {
			return schema.TypeMapping{Type: schema.TypeString, Length: col.DisplaySize, Precision: -1}
		}
	}
	return h.Hook.MapSQLType(col)
}
