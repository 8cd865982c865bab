package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SQLType is the type code a SQL cursor reports for a column.
type SQLType int

const (
	SQLUnknown SQLType = iota
	SQLChar
	SQLVarChar
	SQLLongVarChar
	SQLNChar
	SQLNVarChar
	SQLLongNVarChar
	SQLClob
	SQLNClob
	SQLTinyInt
	SQLSmallInt
	SQLInteger
	SQLBigInt
	SQLDecimal
	SQLNumeric
	SQLReal
	SQLFloat
	SQLDouble
	SQLBit
	SQLBoolean
	SQLDate
	SQLTime
	SQLTimeTZ
	SQLTimestamp
	SQLTimestampTZ
	SQLBinary
	SQLVarBinary
	SQLLongVarBinary
	SQLBlob
	SQLOther
)

var sqlTypeNames = [...]string{
	SQLUnknown:       "UNKNOWN",
	SQLChar:          "CHAR",
	SQLVarChar:       "VARCHAR",
	SQLLongVarChar:   "LONGVARCHAR",
	SQLNChar:         "NCHAR",
	SQLNVarChar:      "NVARCHAR",
	SQLLongNVarChar:  "LONGNVARCHAR",
	SQLClob:          "CLOB",
	SQLNClob:         "NCLOB",
	SQLTinyInt:       "TINYINT",
	SQLSmallInt:      "SMALLINT",
	SQLInteger:       "INTEGER",
	SQLBigInt:        "BIGINT",
	SQLDecimal:       "DECIMAL",
	SQLNumeric:       "NUMERIC",
	SQLReal:          "REAL",
	SQLFloat:         "FLOAT",
	SQLDouble:        "DOUBLE",
	SQLBit:           "BIT",
	SQLBoolean:       "BOOLEAN",
	SQLDate:          "DATE",
	SQLTime:          "TIME",
	SQLTimeTZ:        "TIME_WITH_TIMEZONE",
	SQLTimestamp:     "TIMESTAMP",
	SQLTimestampTZ:   "TIMESTAMP_WITH_TIMEZONE",
	SQLBinary:        "BINARY",
	SQLVarBinary:     "VARBINARY",
	SQLLongVarBinary: "LONGVARBINARY",
	SQLBlob:          "BLOB",
	SQLOther:         "OTHER",
}

func (t SQLType) String() string {
	if t < 0 || int(t) >= len(sqlTypeNames) {
		return sqlTypeNames[SQLUnknown]
	}
	return sqlTypeNames[t]
}

// IsCharacter reports whether t carries text.
func (t SQLType) IsCharacter() bool {
	switch t {
	case SQLChar, SQLVarChar, SQLLongVarChar, SQLNChar, SQLNVarChar, SQLLongNVarChar, SQLClob, SQLNClob:
		return true
	}
	return false
}

// IsBinary reports whether t carries raw bytes.
func (t SQLType) IsBinary() bool {
	switch t {
	case SQLBinary, SQLVarBinary, SQLLongVarBinary, SQLBlob:
		return true
	}
	return false
}

// SQLTypeFromName maps an ANSI type name such as "VARCHAR(20)" or "double precision"
// to a SQLType. Dialect adapters use their own tables first and fall back to this one.
func SQLTypeFromName(name string) SQLType {
	n := strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	switch n {
	case "CHAR", "CHARACTER":
		return SQLChar
	case "VARCHAR", "CHARACTER VARYING", "STRING":
		return SQLVarChar
	case "TEXT", "LONGVARCHAR":
		return SQLLongVarChar
	case "NCHAR":
		return SQLNChar
	case "NVARCHAR":
		return SQLNVarChar
	case "NTEXT", "LONGNVARCHAR":
		return SQLLongNVarChar
	case "CLOB":
		return SQLClob
	case "NCLOB":
		return SQLNClob
	case "TINYINT":
		return SQLTinyInt
	case "SMALLINT", "INT2":
		return SQLSmallInt
	case "INT", "INTEGER", "INT4", "MEDIUMINT":
		return SQLInteger
	case "BIGINT", "INT8":
		return SQLBigInt
	case "DECIMAL", "DEC":
		return SQLDecimal
	case "NUMERIC", "NUMBER":
		return SQLNumeric
	case "REAL", "FLOAT4":
		return SQLReal
	case "FLOAT":
		return SQLFloat
	case "DOUBLE", "DOUBLE PRECISION", "FLOAT8":
		return SQLDouble
	case "BIT":
		return SQLBit
	case "BOOLEAN", "BOOL":
		return SQLBoolean
	case "DATE":
		return SQLDate
	case "TIME":
		return SQLTime
	case "TIMETZ", "TIME WITH TIME ZONE":
		return SQLTimeTZ
	case "TIMESTAMP", "DATETIME", "TIMESTAMP WITHOUT TIME ZONE":
		return SQLTimestamp
	case "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE":
		return SQLTimestampTZ
	case "BINARY":
		return SQLBinary
	case "VARBINARY":
		return SQLVarBinary
	case "LONGVARBINARY":
		return SQLLongVarBinary
	case "BLOB", "BYTEA":
		return SQLBlob
	case "":
		return SQLUnknown
	default:
		return SQLOther
	}
}

// ColumnMeta is the metadata a cursor reports for one column.
// Unknown sizes are -1.
type ColumnMeta struct {
	Name        string
	SQLType     SQLType
	TypeName    string // database type name as reported by the driver
	DisplaySize int
	Precision   int
	Scale       int
	Nullable    bool
}

// Accessor names one typed read method of a Cursor.
type Accessor int

const (
	AccessorString Accessor = iota
	AccessorInt64
	AccessorFloat64
	AccessorDecimal
	AccessorBool
	AccessorDate
	AccessorTime
	AccessorTimestamp
	AccessorBytes
)

var accessorNames = [...]string{"String", "Int64", "Float64", "Decimal", "Bool", "Date", "Time", "Timestamp", "Bytes"}

func (a Accessor) String() string {
	if a < 0 || int(a) >= len(accessorNames) {
		return "Unknown"
	}
	return accessorNames[a]
}

// Cursor is a SQL result positioned at the current row.
// Column indexes are 1-based. Every accessor returns ok=false for SQL NULL.
type Cursor interface {
	ColumnCount() int
	Column(index int) (ColumnMeta, error)

	String(index int) (string, bool, error)
	Int64(index int) (int64, bool, error)
	Float64(index int) (float64, bool, error)
	Decimal(index int) (decimal.Decimal, bool, error)
	Bool(index int) (bool, bool, error)
	Date(index int) (time.Time, bool, error)
	Time(index int) (time.Time, bool, error)
	Timestamp(index int) (time.Time, bool, error)
	Bytes(index int) ([]byte, bool, error)
}

// read calls the accessor a on cur.
func (a Accessor) read(cur Cursor, index int) (any, bool, error) {
	switch a {
	case AccessorString:
		return wrap(cur.String(index))
	case AccessorInt64:
		return wrap(cur.Int64(index))
	case AccessorFloat64:
		return wrap(cur.Float64(index))
	case AccessorDecimal:
		return wrap(cur.Decimal(index))
	case AccessorBool:
		return wrap(cur.Bool(index))
	case AccessorDate:
		return wrap(cur.Date(index))
	case AccessorTime:
		return wrap(cur.Time(index))
	case AccessorTimestamp:
		return wrap(cur.Timestamp(index))
	case AccessorBytes:
		return wrap(cur.Bytes(index))
	default:
		return nil, false, &ValidationError{Field: "accessor", Message: "unknown accessor", Value: a.String()}
	}
}

func wrap[T any](v T, ok bool, err error) (any, bool, error) {
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}
