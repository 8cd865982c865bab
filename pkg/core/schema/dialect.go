package schema

import (
	"strings"
)

// Dialect identifies a supported database family.
type Dialect int

const (
	DialectGeneric Dialect = iota
	DialectPostgreSQL
	DialectMySQL
	DialectMSSQL
	DialectSQLite
)

var dialectNames = [...]string{"generic", "postgres", "mysql", "mssql", "sqlite"}

// Dialects lists every dialect. Adapters must register a hook for each one.
func Dialects() []Dialect {
	return []Dialect{DialectGeneric, DialectPostgreSQL, DialectMySQL, DialectMSSQL, DialectSQLite}
}

func (d Dialect) String() string {
	if d < 0 || int(d) >= len(dialectNames) {
		return "unknown"
	}
	return dialectNames[d]
}

// ParseDialect resolves a dialect name. "postgresql" and "sqlserver" are accepted aliases.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "generic":
		return DialectGeneric, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgreSQL, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "mssql", "sqlserver":
		return DialectMSSQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return DialectGeneric, &ValidationError{Field: "dialect", Message: "unsupported dialect", Value: s}
	}
}

// TypeMapping is the descriptor shape chosen for a SQL column.
type TypeMapping struct {
	Type      SemanticType
	Length    int
	Precision int
}

// DialectHook adapts type mapping and cursor reads to one database.
type DialectHook interface {
	Dialect() Dialect
	// MapSQLType chooses the semantic type, length and precision for a column.
	MapSQLType(col ColumnMeta) TypeMapping
	// ResolveBinaryLength reports the declared length of a binary column.
	ResolveBinaryLength(col ColumnMeta) int
	// ChooseAccessor picks the cursor accessor used to read a column into type t.
	ChooseAccessor(col ColumnMeta, t SemanticType) Accessor
}

// DefaultTypeMapping is the dialect-independent SQL type table.
func DefaultTypeMapping(col ColumnMeta) TypeMapping {
	m := TypeMapping{Type: TypeString, Length: -1, Precision: -1}

	switch col.SQLType {
	case SQLChar, SQLVarChar, SQLLongVarChar, SQLNChar, SQLNVarChar, SQLLongNVarChar, SQLClob, SQLNClob:
		m.Type = TypeString
		if col.DisplaySize > 0 {
			m.Length = col.DisplaySize
		}

	case SQLBigInt:
		m.Type, m.Length, m.Precision = TypeInteger, 15, 0
	case SQLInteger:
		m.Type, m.Length, m.Precision = TypeInteger, 9, 0
	case SQLSmallInt:
		m.Type, m.Length, m.Precision = TypeInteger, 4, 0
	case SQLTinyInt:
		m.Type, m.Length, m.Precision = TypeInteger, 2, 0

	case SQLDecimal, SQLNumeric, SQLDouble, SQLFloat, SQLReal:
		m = numericMapping(col)

	case SQLTimestamp, SQLTimestampTZ:
		m.Type = TypeTimestamp
	case SQLDate, SQLTime, SQLTimeTZ:
		m.Type = TypeDate

	case SQLBit, SQLBoolean:
		m.Type = TypeBoolean

	case SQLBinary, SQLVarBinary, SQLLongVarBinary, SQLBlob:
		m.Type = TypeBinary
		m.Length = DefaultBinaryLength(col)
	}

	return m
}

// numericMapping derives NUMBER, INTEGER or BIGNUMBER from reported precision and scale.
// Length is the total number of digits, precision the digits after the point.
func numericMapping(col ColumnMeta) TypeMapping {
	m := TypeMapping{Type: TypeNumber, Length: col.Precision, Precision: col.Scale}
	if m.Length >= 126 {
		m.Length = -1
	}

	switch col.SQLType {
	case SQLDouble, SQLFloat, SQLReal:
		if m.Precision == 0 {
			m.Precision = -1
		}
		if m.Length > 15 || m.Precision > 15 {
			m.Type = TypeBigNumber
		}
	default:
		if m.Precision == 0 {
			switch {
			case m.Length > 18:
				m.Type = TypeBigNumber
			case m.Length > 0:
				m.Type = TypeInteger
			}
		} else if m.Length > 15 || m.Precision > 15 {
			m.Type = TypeBigNumber
		}
	}
	return m
}

// DefaultBinaryLength uses the display size reported by the driver.
func DefaultBinaryLength(col ColumnMeta) int {
	if col.DisplaySize > 0 {
		return col.DisplaySize
	}
	return -1
}

// DefaultAccessor picks the accessor matching the semantic type.
// Temporal columns are read by their SQL type so TIME values keep their date part intact.
func DefaultAccessor(col ColumnMeta, t SemanticType) Accessor {
	switch t {
	case TypeInteger:
		return AccessorInt64
	case TypeNumber:
		return AccessorFloat64
	case TypeBigNumber:
		return AccessorDecimal
	case TypeBoolean:
		return AccessorBool
	case TypeBinary:
		return AccessorBytes
	case TypeDate, TypeTimestamp:
		switch col.SQLType {
		case SQLTime, SQLTimeTZ:
			return AccessorTime
		case SQLDate:
			return AccessorDate
		default:
			return AccessorTimestamp
		}
	default:
		return AccessorString
	}
}

func mapColumn(hook DialectHook, col ColumnMeta) TypeMapping {
	if hook == nil {
		return DefaultTypeMapping(col)
	}
	m := hook.MapSQLType(col)
	if m.Type == TypeBinary {
		m.Length = hook.ResolveBinaryLength(col)
	}
	return m
}

func chooseAccessor(hook DialectHook, col ColumnMeta, t SemanticType) Accessor {
	if hook == nil {
		return DefaultAccessor(col, t)
	}
	return hook.ChooseAccessor(col, t)
}
