package mssql

import (
	mssql "github.com/denisenkom/go-mssqldb"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// columnTypes - имена типов из DatabaseTypeName драйвера
var columnTypes = base.TypeTable{
	"TINYINT":          schema.SQLTinyInt,
	"SMALLINT":         schema.SQLSmallInt,
	"INT":              schema.SQLInteger,
	"BIGINT":           schema.SQLBigInt,
	"BIT":              schema.SQLBit,
	"DECIMAL":          schema.SQLDecimal,
	"NUMERIC":          schema.SQLNumeric,
	"MONEY":            schema.SQLDecimal,
	"SMALLMONEY":       schema.SQLDecimal,
	"FLOAT":            schema.SQLDouble,
	"REAL":             schema.SQLReal,
	"DATE":             schema.SQLDate,
	"TIME":             schema.SQLTime,
	"DATETIME":         schema.SQLTimestamp,
	"SMALLDATETIME":    schema.SQLTimestamp,
	"DATETIME2":        schema.SQLTimestamp,
	"DATETIMEOFFSET":   schema.SQLTimestampTZ,
	"CHAR":             schema.SQLChar,
	"VARCHAR":          schema.SQLVarChar,
	"TEXT":             schema.SQLLongVarChar,
	"NCHAR":            schema.SQLNChar,
	"NVARCHAR":         schema.SQLNVarChar,
	"NTEXT":            schema.SQLLongNVarChar,
	"XML":              schema.SQLLongNVarChar,
	"BINARY":           schema.SQLBinary,
	"VARBINARY":        schema.SQLVarBinary,
	"IMAGE":            schema.SQLLongVarBinary,
	"UNIQUEIDENTIFIER": schema.SQLChar,
	"SQL_VARIANT":      schema.SQLOther,
}

// normalize приводит UNIQUEIDENTIFIER к канонической строке.
// Драйвер отдает 16 байт в порядке TDS (первые три группы little-endian).
func normalize(col schema.ColumnMeta, v any) (any, error) {
	b, ok := v.([]byte)
	if !ok || col.TypeName != "UNIQUEIDENTIFIER" {
		return v, nil
	}
	var id mssql.UniqueIdentifier
	if err := id.Scan(b); err != nil {
		return nil, err
	}
	return id.String(), nil
}
