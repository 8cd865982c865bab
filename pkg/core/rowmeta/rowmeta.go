package rowmeta

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// RowMeta is an ordered list of column descriptors. Row slot i holds a value of
// column i in that column's storage form.
type RowMeta struct {
	cols []*schema.Meta
}

// New creates row metadata from descriptors.
func New(cols ...*schema.Meta) *RowMeta {
	return &RowMeta{cols: append([]*schema.Meta(nil), cols...)}
}

// FromCursor builds row metadata from the cursor's column metadata.
func FromCursor(reg *schema.Registry, hook schema.DialectHook, cur schema.Cursor) (*RowMeta, error) {
	rm := &RowMeta{cols: make([]*schema.Meta, 0, cur.ColumnCount())}
	for i := 1; i <= cur.ColumnCount(); i++ {
		col, err := cur.Column(i)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		m, err := reg.DescriptorFromColumn(hook, col)
		if err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", i, col.Name, err)
		}
		rm.cols = append(rm.cols, m)
	}
	return rm, nil
}

// Add appends a column.
func (rm *RowMeta) Add(m *schema.Meta) { rm.cols = append(rm.cols, m) }

// Len returns the number of columns.
func (rm *RowMeta) Len() int { return len(rm.cols) }

// Descriptor returns column i (0-based).
func (rm *RowMeta) Descriptor(i int) *schema.Meta { return rm.cols[i] }

// IndexOf finds a column by name, ignoring case. Returns -1 if absent.
func (rm *RowMeta) IndexOf(name string) int {
	for i, m := range rm.cols {
		if strings.EqualFold(m.Name(), name) {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func (rm *RowMeta) Names() []string {
	names := make([]string, len(rm.cols))
	for i, m := range rm.cols {
		names[i] = m.Name()
	}
	return names
}

// Keys resolves column names to indexes.
func (rm *RowMeta) Keys(names ...string) ([]int, error) {
	keys := make([]int, len(names))
	for i, name := range names {
		idx := rm.IndexOf(name)
		if idx < 0 {
			return nil, fmt.Errorf("field '%s' not found", name)
		}
		keys[i] = idx
	}
	return keys, nil
}

// Clone deep-copies every descriptor.
func (rm *RowMeta) Clone() *RowMeta {
	c := &RowMeta{cols: make([]*schema.Meta, len(rm.cols))}
	for i, m := range rm.cols {
		c.cols[i] = m.Clone()
	}
	return c
}

func (rm *RowMeta) String() string {
	parts := make([]string, len(rm.cols))
	for i, m := range rm.cols {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// keyColumns returns keys, or every column when keys is empty.
func (rm *RowMeta) keyColumns(keys []int) ([]int, error) {
	if len(keys) == 0 {
		all := make([]int, len(rm.cols))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, k := range keys {
		if k < 0 || k >= len(rm.cols) {
			return nil, fmt.Errorf("key column %d out of range [0, %d)", k, len(rm.cols))
		}
	}
	return keys, nil
}

func (rm *RowMeta) checkRow(row []any) error {
	if len(row) != len(rm.cols) {
		return fmt.Errorf("row has %d values, metadata has %d columns", len(row), len(rm.cols))
	}
	return nil
}

// CompareRows compares two rows on the key columns, in order, and returns the
// first non-zero result. Each column applies its own sort direction.
func (rm *RowMeta) CompareRows(a, b []any, keys []int) (int, error) {
	keys, err := rm.keyColumns(keys)
	if err != nil {
		return 0, err
	}
	if err := rm.checkRow(a); err != nil {
		return 0, err
	}
	if err := rm.checkRow(b); err != nil {
		return 0, err
	}
	return rm.compareKeys(a, b, keys)
}

func (rm *RowMeta) compareKeys(a, b []any, keys []int) (int, error) {
	for _, k := range keys {
		c, err := rm.cols[k].Compare(a[k], b[k])
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", rm.cols[k].Name(), err)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Sort orders rows in place on the key columns. Equal rows keep their order.
// On error the order of rows is unspecified.
func (rm *RowMeta) Sort(rows [][]any, keys []int) error {
	keys, err := rm.keyColumns(keys)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if err := rm.checkRow(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, err := rm.compareKeys(rows[i], rows[j], keys)
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	return sortErr
}

// Hash combines the value hashes of the key columns. Rows that compare equal on
// those columns hash equal.
func (rm *RowMeta) Hash(row []any, keys []int) (uint64, error) {
	keys, err := rm.keyColumns(keys)
	if err != nil {
		return 0, err
	}
	if err := rm.checkRow(row); err != nil {
		return 0, err
	}

	h := xxh3.New()
	var buf [8]byte
	for _, k := range keys {
		v, err := rm.cols[k].Hash(row[k])
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", rm.cols[k].Name(), err)
		}
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return h.Sum64(), nil
}

// ConvertRow converts a row described by src into this metadata's columns,
// column by column.
func (rm *RowMeta) ConvertRow(src *RowMeta, row []any) ([]any, error) {
	if src.Len() != rm.Len() {
		return nil, fmt.Errorf("source has %d columns, target has %d", src.Len(), rm.Len())
	}
	if err := src.checkRow(row); err != nil {
		return nil, err
	}
	out := make([]any, len(row))
	for i, m := range rm.cols {
		v, err := m.Convert(src.cols[i], row[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// FormatRow renders each value as text. Absent values render as "".
func (rm *RowMeta) FormatRow(row []any) ([]string, error) {
	if err := rm.checkRow(row); err != nil {
		return nil, err
	}
	out := make([]string, len(row))
	for i, m := range rm.cols {
		s, _, err := m.GetString(row[i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// ReadRow extracts the current cursor row. Cursor column i+1 feeds column i.
func (rm *RowMeta) ReadRow(hook schema.DialectHook, cur schema.Cursor) ([]any, error) {
	if cur.ColumnCount() < len(rm.cols) {
		return nil, fmt.Errorf("cursor has %d columns, metadata has %d", cur.ColumnCount(), len(rm.cols))
	}
	row := make([]any, len(rm.cols))
	for i, m := range rm.cols {
		v, err := m.ExtractFromCursor(hook, cur, i+1)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
