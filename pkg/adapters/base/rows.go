package base

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Размеры больше этого значения драйверы возвращают как "без ограничений"
const unlimited = 1 << 30

// ValueFunc нормализует сырое значение драйвера перед чтением аксессором.
// Используется для типов конкретной СУБД (UNIQUEIDENTIFIER в MS SQL и т.п.)
type ValueFunc func(col schema.ColumnMeta, v any) (any, error)

// ValueCursor реализует аксессоры schema.Cursor над уже прочитанной строкой.
// Vals[i] - сырое значение драйвера для колонки i+1, nil - SQL NULL.
type ValueCursor struct {
	Cols []schema.ColumnMeta
	Vals []any
}

// RowsCursor - schema.Cursor поверх *sql.Rows
type RowsCursor struct {
	ValueCursor
	rows   *sql.Rows
	ptrs   []any
	normal ValueFunc
	err    error
}

// NewRowsCursor оборачивает rows. types сопоставляет имена типов драйвера с SQLType,
// normal может быть nil.
func NewRowsCursor(rows *sql.Rows, types TypeResolver, normal ValueFunc) (*RowsCursor, error) {
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}

	c := &RowsCursor{
		ValueCursor: ValueCursor{
			Cols: make([]schema.ColumnMeta, len(cts)),
			Vals: make([]any, len(cts)),
		},
		rows:   rows,
		ptrs:   make([]any, len(cts)),
		normal: normal,
	}
	for i, ct := range cts {
		c.Cols[i] = ColumnMeta(ct, types)
		c.ptrs[i] = &c.Vals[i]
	}
	return c, nil
}

// ColumnMeta собирает метаданные колонки из sql.ColumnType.
// Размеры, которые драйвер не сообщает, берутся из аргументов имени типа.
func ColumnMeta(ct *sql.ColumnType, types TypeResolver) schema.ColumnMeta {
	typeName := ct.DatabaseTypeName()
	_, args := ParseTypeName(typeName)

	col := schema.ColumnMeta{
		Name:        ct.Name(),
		TypeName:    typeName,
		SQLType:     types.Lookup(typeName),
		DisplaySize: -1,
		Precision:   -1,
		Scale:       -1,
		Nullable:    true,
	}

	if l, ok := ct.Length(); ok && l > 0 && l < unlimited {
		col.DisplaySize = int(l)
	} else if len(args) > 0 && args[0] > 0 && (col.SQLType.IsCharacter() || col.SQLType.IsBinary()) {
		col.DisplaySize = args[0]
	}

	if p, s, ok := ct.DecimalSize(); ok {
		if p >= 0 && p < unlimited {
			col.Precision = int(p)
		}
		if s >= 0 && s < unlimited {
			col.Scale = int(s)
		}
	} else if len(args) > 0 && !col.SQLType.IsCharacter() && !col.SQLType.IsBinary() {
		col.Precision = args[0]
		col.Scale = 0
		if len(args) > 1 {
			col.Scale = args[1]
		}
	}

	if nullable, ok := ct.Nullable(); ok {
		col.Nullable = nullable
	}
	return col
}

// Next переходит к следующей строке и сканирует ее
func (c *RowsCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	if err := c.rows.Scan(c.ptrs...); err != nil {
		c.err = fmt.Errorf("failed to scan row: %w", err)
		return false
	}
	if c.normal != nil {
		for i, v := range c.Vals {
			if v == nil {
				continue
			}
			nv, err := c.normal(c.Cols[i], v)
			if err != nil {
				c.err = fmt.Errorf("column %s: %w", c.Cols[i].Name, err)
				return false
			}
			c.Vals[i] = nv
		}
	}
	return true
}

func (c *RowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *RowsCursor) Close() error { return c.rows.Close() }

func (c *ValueCursor) ColumnCount() int { return len(c.Cols) }

func (c *ValueCursor) Column(i int) (schema.ColumnMeta, error) {
	if i < 1 || i > len(c.Cols) {
		return schema.ColumnMeta{}, fmt.Errorf("column index %d out of range [1, %d]", i, len(c.Cols))
	}
	return c.Cols[i-1], nil
}

func (c *ValueCursor) value(i int) (any, error) {
	if i < 1 || i > len(c.Vals) {
		return nil, fmt.Errorf("column index %d out of range [1, %d]", i, len(c.Vals))
	}
	return c.Vals[i-1], nil
}

// read достает значение колонки и конвертирует его, nil - SQL NULL
func read[T any](c *ValueCursor, i int, conv func(any) (T, error)) (T, bool, error) {
	var zero T
	v, err := c.value(i)
	if err != nil || v == nil {
		return zero, false, err
	}
	t, err := conv(v)
	if err != nil {
		return zero, false, err
	}
	return t, true, nil
}

func (c *ValueCursor) String(i int) (string, bool, error)   { return read(c, i, ToString) }
func (c *ValueCursor) Int64(i int) (int64, bool, error)     { return read(c, i, ToInt64) }
func (c *ValueCursor) Float64(i int) (float64, bool, error) { return read(c, i, ToFloat64) }
func (c *ValueCursor) Bool(i int) (bool, bool, error)       { return read(c, i, ToBool) }
func (c *ValueCursor) Bytes(i int) ([]byte, bool, error)    { return read(c, i, ToBytes) }
func (c *ValueCursor) Date(i int) (time.Time, bool, error)  { return read(c, i, ToTime) }
func (c *ValueCursor) Time(i int) (time.Time, bool, error)  { return read(c, i, ToTime) }

func (c *ValueCursor) Decimal(i int) (decimal.Decimal, bool, error) {
	return read(c, i, ToDecimal)
}

func (c *ValueCursor) Timestamp(i int) (time.Time, bool, error) {
	return read(c, i, ToTime)
}
