package mysql

import (
	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// columnTypes - имена, которые возвращает DatabaseTypeName драйвера.
// Префикс UNSIGNED снимает base.ParseTypeName.
var columnTypes = base.TypeTable{
	"TINYINT":    schema.SQLTinyInt,
	"SMALLINT":   schema.SQLSmallInt,
	"YEAR":       schema.SQLSmallInt,
	"MEDIUMINT":  schema.SQLInteger,
	"INT":        schema.SQLInteger,
	"BIGINT":     schema.SQLBigInt,
	"FLOAT":      schema.SQLReal,
	"DOUBLE":     schema.SQLDouble,
	"DECIMAL":    schema.SQLDecimal,
	"BIT":        schema.SQLBit,
	"CHAR":       schema.SQLChar,
	"VARCHAR":    schema.SQLVarChar,
	"TINYTEXT":   schema.SQLVarChar,
	"TEXT":       schema.SQLLongVarChar,
	"MEDIUMTEXT": schema.SQLLongVarChar,
	"LONGTEXT":   schema.SQLLongVarChar,
	"JSON":       schema.SQLLongVarChar,
	"ENUM":       schema.SQLVarChar,
	"SET":        schema.SQLVarChar,
	"BINARY":     schema.SQLBinary,
	"VARBINARY":  schema.SQLVarBinary,
	"TINYBLOB":   schema.SQLVarBinary,
	"BLOB":       schema.SQLLongVarBinary,
	"MEDIUMBLOB": schema.SQLLongVarBinary,
	"LONGBLOB":   schema.SQLLongVarBinary,
	"GEOMETRY":   schema.SQLLongVarBinary,
	"VECTOR":     schema.SQLLongVarBinary,
	"DATE":       schema.SQLDate,
	"TIME":       schema.SQLTime,
	"DATETIME":   schema.SQLTimestamp,
	"TIMESTAMP":  schema.SQLTimestamp,
	"NULL":       schema.SQLUnknown,
}

// normalize превращает BIT(1) из []byte в число, которое читает аксессор Bool
func normalize(col schema.ColumnMeta, v any) (any, error) {
	b, ok := v.([]byte)
	if !ok || col.SQLType != schema.SQLBit || !isSingleBit(col) {
		return v, nil
	}
	var n int64
	for _, x := range b {
		n = n<<8 | int64(x)
	}
	return n, nil
}
