package postgres

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters/base"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Cursor - schema.Cursor поверх pgx.Rows.
// Значения читаются через rows.Values() и приводятся к типам аксессоров.
type Cursor struct {
	base.ValueCursor
	rows pgx.Rows
	err  error
}

// NewCursor оборачивает rows
func NewCursor(rows pgx.Rows) *Cursor {
	types := pgtype.NewMap()
	if conn := rows.Conn(); conn != nil {
		types = conn.TypeMap()
	}

	fds := rows.FieldDescriptions()
	c := &Cursor{
		ValueCursor: base.ValueCursor{Cols: make([]schema.ColumnMeta, len(fds))},
		rows:        rows,
	}
	for i, fd := range fds {
		c.Cols[i] = ColumnMeta(fd, types)
	}
	return c
}

// Next переходит к следующей строке
func (c *Cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	vals, err := c.rows.Values()
	if err != nil {
		c.err = fmt.Errorf("failed to read row: %w", err)
		return false
	}
	for i, v := range vals {
		if vals[i], err = normalize(v); err != nil {
			c.err = fmt.Errorf("column %s: %w", c.Cols[i].Name, err)
			return false
		}
	}
	c.Vals = vals
	return true
}

func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *Cursor) Close() error {
	c.rows.Close()
	return c.rows.Err()
}

// normalize приводит значения pgtype к типам, которые понимают конвертеры base
func normalize(v any) (any, error) {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return nil, nil
		}
		if x.NaN || x.InfinityModifier != pgtype.Finite {
			return nil, fmt.Errorf("numeric value %v has no decimal form", v)
		}
		return decimal.NewFromBigInt(x.Int, x.Exp), nil

	case pgtype.Time:
		if !x.Valid {
			return nil, nil
		}
		return time.Unix(0, 0).UTC().Add(time.Duration(x.Microseconds) * time.Microsecond), nil

	case pgtype.InfinityModifier:
		return nil, fmt.Errorf("infinite date %s", x)

	case netip.Prefix:
		// inet с маской по длине адреса - одиночный адрес
		if x.Bits() == x.Addr().BitLen() {
			return x.Addr().String(), nil
		}
		return x.String(), nil

	case [16]byte:
		return formatUUID(x), nil

	case pgtype.Bits:
		if !x.Valid {
			return nil, nil
		}
		if x.Len == 1 {
			return x.Bytes[0]&0x80 != 0, nil
		}
		var sb strings.Builder
		for i := int32(0); i < x.Len; i++ {
			if x.Bytes[i/8]&(0x80>>(i%8)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		return sb.String(), nil
	}
	return v, nil
}

// formatUUID: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func formatUUID(v [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16])
}
