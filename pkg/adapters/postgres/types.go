package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// oidTypes сопоставляет OID встроенных типов PostgreSQL с SQLType.
// inet/cidr/uuid остаются OTHER/CHAR, их семантику задает Hook по имени типа.
var oidTypes = map[uint32]schema.SQLType{
	pgtype.BoolOID:        schema.SQLBoolean,
	pgtype.ByteaOID:       schema.SQLBlob,
	pgtype.QCharOID:       schema.SQLChar,
	pgtype.NameOID:        schema.SQLVarChar,
	pgtype.Int2OID:        schema.SQLSmallInt,
	pgtype.Int4OID:        schema.SQLInteger,
	pgtype.Int8OID:        schema.SQLBigInt,
	pgtype.OIDOID:         schema.SQLBigInt,
	pgtype.TextOID:        schema.SQLLongVarChar,
	pgtype.JSONOID:        schema.SQLLongVarChar,
	pgtype.JSONBOID:       schema.SQLLongVarChar,
	pgtype.XMLOID:         schema.SQLLongVarChar,
	pgtype.Float4OID:      schema.SQLReal,
	pgtype.Float8OID:      schema.SQLDouble,
	pgtype.BPCharOID:      schema.SQLChar,
	pgtype.VarcharOID:     schema.SQLVarChar,
	pgtype.DateOID:        schema.SQLDate,
	pgtype.TimeOID:        schema.SQLTime,
	pgtype.TimetzOID:      schema.SQLTimeTZ,
	pgtype.TimestampOID:   schema.SQLTimestamp,
	pgtype.TimestamptzOID: schema.SQLTimestampTZ,
	pgtype.NumericOID:     schema.SQLNumeric,
	pgtype.BitOID:         schema.SQLBit,
	pgtype.UUIDOID:        schema.SQLChar,
	pgtype.InetOID:        schema.SQLOther,
	pgtype.CIDROID:        schema.SQLOther,
}

// Точность, которую сообщают драйверы JDBC/ODBC для типов без модификатора
var fixedPrecision = map[uint32][2]int{
	pgtype.Int2OID:   {5, 0},
	pgtype.Int4OID:   {10, 0},
	pgtype.Int8OID:   {19, 0},
	pgtype.Float4OID: {8, -1},
	pgtype.Float8OID: {17, 17},
}

// ColumnMeta строит метаданные колонки из описания поля протокола.
// Размеры varchar/bpchar/numeric извлекаются из type modifier.
func ColumnMeta(fd pgconn.FieldDescription, types *pgtype.Map) schema.ColumnMeta {
	col := schema.ColumnMeta{
		Name:        fd.Name,
		SQLType:     schema.SQLOther,
		TypeName:    fmt.Sprintf("oid:%d", fd.DataTypeOID),
		DisplaySize: -1,
		Precision:   -1,
		Scale:       -1,
		Nullable:    true,
	}
	if t, ok := types.TypeForOID(fd.DataTypeOID); ok {
		col.TypeName = t.Name
	}
	if st, ok := oidTypes[fd.DataTypeOID]; ok {
		col.SQLType = st
	}

	mod := fd.TypeModifier
	switch fd.DataTypeOID {
	case pgtype.VarcharOID, pgtype.BPCharOID:
		// typmod = длина + 4 (VARHDRSZ)
		if mod > 4 {
			col.DisplaySize = int(mod - 4)
		}
	case pgtype.NumericOID:
		// typmod = ((precision << 16) | scale) + 4, -1 для numeric без ограничений
		if mod >= 4 {
			col.Precision = int((mod-4)>>16) & 0xffff
			col.Scale = int(mod-4) & 0xffff
		}
	case pgtype.BitOID:
		if mod > 0 {
			col.DisplaySize = int(mod)
			col.Precision = int(mod)
		}
	case pgtype.UUIDOID:
		col.DisplaySize = 36
	}
	if p, ok := fixedPrecision[fd.DataTypeOID]; ok {
		col.Precision, col.Scale = p[0], p[1]
	}
	return col
}
