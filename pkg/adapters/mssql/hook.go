package mssql

import (
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Hook - особенности SQL Server
type Hook struct {
	base.Hook
}

func (h Hook) MapSQLType(col schema.ColumnMeta) schema.TypeMapping {
	switch col.TypeName {
	case "MONEY":
		return schema.TypeMapping{Type: schema.TypeBigNumber, Length: 19, Precision: 4}
	case "SMALLMONEY":
		return schema.TypeMapping{Type: schema.TypeBigNumber, Length: 10, Precision: 4}
	case "UNIQUEIDENTIFIER":
		return schema.TypeMapping{Type: schema.TypeString, Length: 36, Precision: -1}
	case "DATETIME2", "DATETIMEOFFSET":
		return schema.TypeMapping{Type: schema.TypeTimestamp, Length: -1, Precision: -1}
	case "DATETIME", "SMALLDATETIME":
		return schema.TypeMapping{Type: schema.TypeDate, Length: -1, Precision: -1}
	case "TINYINT":
		// 0..255
		return schema.TypeMapping{Type: schema.TypeInteger, Length: 3, Precision: 0}
	}
	return h.Hook.MapSQLType(col)
}
