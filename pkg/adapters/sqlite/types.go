package sqlite

import (
	"strings"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// declaredTypes - типы, которые встречаются в CREATE TABLE.
// SQLite хранит INTEGER как 64-битное целое, поэтому все целые кроме TINYINT/SMALLINT - BIGINT.
var declaredTypes = base.TypeTable{
	"INTEGER":           schema.SQLBigInt,
	"INT":               schema.SQLBigInt,
	"MEDIUMINT":         schema.SQLBigInt,
	"BIGINT":            schema.SQLBigInt,
	"INT8":              schema.SQLBigInt,
	"TINYINT":           schema.SQLTinyInt,
	"SMALLINT":          schema.SQLSmallInt,
	"REAL":              schema.SQLDouble,
	"DOUBLE":            schema.SQLDouble,
	"DOUBLE PRECISION":  schema.SQLDouble,
	"FLOAT":             schema.SQLDouble,
	"NUMERIC":           schema.SQLNumeric,
	"DECIMAL":           schema.SQLDecimal,
	"TEXT":              schema.SQLLongVarChar,
	"CLOB":              schema.SQLClob,
	"VARCHAR":           schema.SQLVarChar,
	"CHARACTER VARYING": schema.SQLVarChar,
	"VARYING CHARACTER": schema.SQLVarChar,
	"NVARCHAR":          schema.SQLNVarChar,
	"CHAR":              schema.SQLChar,
	"CHARACTER":         schema.SQLChar,
	"NCHAR":             schema.SQLNChar,
	"NATIVE CHARACTER":  schema.SQLNChar,
	"BOOLEAN":           schema.SQLBoolean,
	"BOOL":              schema.SQLBoolean,
	"DATE":              schema.SQLDate,
	"DATETIME":          schema.SQLTimestamp,
	"TIMESTAMP":         schema.SQLTimestamp,
	"TIME":              schema.SQLTime,
	"BLOB":              schema.SQLBlob,
}

// typeResolver ищет объявленный тип в таблице, остальные имена
// определяет по правилам type affinity SQLite
type typeResolver struct{}

func (typeResolver) Lookup(name string) schema.SQLType {
	baseType, _ := base.ParseTypeName(name)
	if st, ok := declaredTypes[baseType]; ok {
		return st
	}
	return affinity(baseType)
}

// affinity - правила из https://www.sqlite.org/datatype3.html#determination_of_column_affinity
func affinity(name string) schema.SQLType {
	switch {
	case name == "":
		// выражения без объявленного типа
		return schema.SQLUnknown
	case strings.Contains(name, "INT"):
		return schema.SQLBigInt
	case strings.Contains(name, "CHAR"), strings.Contains(name, "CLOB"), strings.Contains(name, "TEXT"):
		return schema.SQLLongVarChar
	case strings.Contains(name, "BLOB"):
		return schema.SQLBlob
	case strings.Contains(name, "REAL"), strings.Contains(name, "FLOA"), strings.Contains(name, "DOUB"):
		return schema.SQLDouble
	default:
		return schema.SQLNumeric
	}
}
