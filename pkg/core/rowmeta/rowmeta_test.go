package rowmeta

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

func column(t *testing.T, typ schema.SemanticType, name string) *schema.Meta {
	t.Helper()
	m, err := schema.NewRegistry().New(typ, name, -1, -1)
	if err != nil {
		t.Fatalf("New(%s): %v", typ, err)
	}
	return m
}

func TestSort_SingleFieldAsc(t *testing.T) {
	rm := New(column(t, schema.TypeInteger, "id"), column(t, schema.TypeInteger, "age"))
	rows := [][]any{
		{int64(3), int64(35)},
		{int64(1), int64(25)},
		{int64(2), int64(30)},
	}

	keys, err := rm.Keys("AGE")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if err := rm.Sort(rows, keys); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int64{25, 30, 35}
	for i, row := range rows {
		if row[1] != expected[i] {
			t.Errorf("row[%d]: expected age %d, got %v", i, expected[i], row[1])
		}
	}
}

func TestSort_MultipleFieldsWithDirection(t *testing.T) {
	dept := column(t, schema.TypeString, "dept")
	salary := column(t, schema.TypeNumber, "salary")
	salary.SetSortDirection(schema.SortDescending)
	rm := New(dept, salary)

	rows := [][]any{
		{"sales", 100.0},
		{"it", 150.0},
		{"sales", 300.0},
		{"it", 250.0},
	}
	if err := rm.Sort(rows, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]any{
		{"it", 250.0},
		{"it", 150.0},
		{"sales", 300.0},
		{"sales", 100.0},
	}
	for i := range rows {
		if fmt.Sprint(rows[i]) != fmt.Sprint(expected[i]) {
			t.Errorf("row[%d] = %v, want %v", i, rows[i], expected[i])
		}
	}
}

func TestSort_Stable(t *testing.T) {
	rm := New(column(t, schema.TypeString, "group"), column(t, schema.TypeInteger, "seq"))
	rows := [][]any{
		{"b", int64(1)},
		{"a", int64(2)},
		{"b", int64(3)},
		{"a", int64(4)},
		{"b", int64(5)},
	}
	if err := rm.Sort(rows, []int{0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int64{2, 4, 1, 3, 5}
	for i, row := range rows {
		if row[1] != expected[i] {
			t.Errorf("row[%d]: expected seq %d, got %v", i, expected[i], row[1])
		}
	}
}

func TestSort_NullsFirst(t *testing.T) {
	rm := New(column(t, schema.TypeString, "name"))
	rows := [][]any{{"b"}, {nil}, {"a"}, {""}}
	if err := rm.Sort(rows, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// nil and "" are both absent, so they keep their relative order.
	expected := []any{nil, "", "a", "b"}
	for i, row := range rows {
		if row[0] != expected[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[0], expected[i])
		}
	}
}

func TestCompareRows(t *testing.T) {
	name := column(t, schema.TypeString, "name")
	name.SetCaseInsensitive(true)
	rm := New(name, column(t, schema.TypeInteger, "n"))

	tests := []struct {
		name string
		a, b []any
		keys []int
		want int
	}{
		{"equal", []any{"x", int64(1)}, []any{"X", int64(1)}, nil, 0},
		{"second column decides", []any{"x", int64(1)}, []any{"x", int64(2)}, nil, -1},
		{"first column decides", []any{"y", int64(1)}, []any{"x", int64(2)}, nil, 1},
		{"only key columns", []any{"y", int64(1)}, []any{"x", int64(1)}, []int{1}, 0},
		{"key order", []any{"y", int64(1)}, []any{"x", int64(2)}, []int{1, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rm.CompareRows(tt.a, tt.b, tt.keys)
			if err != nil {
				t.Fatalf("CompareRows: %v", err)
			}
			if got != tt.want {
				t.Errorf("CompareRows(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareRows_Errors(t *testing.T) {
	rm := New(column(t, schema.TypeInteger, "n"))

	if _, err := rm.CompareRows([]any{int64(1)}, []any{int64(2)}, []int{1}); err == nil {
		t.Error("expected error for key out of range")
	}
	if _, err := rm.CompareRows([]any{int64(1), int64(2)}, []any{int64(2)}, nil); err == nil {
		t.Error("expected error for row length mismatch")
	}

	_, err := rm.CompareRows([]any{int64(1)}, []any{struct{}{}}, nil)
	var mismatch *schema.ComparisonTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("expected ComparisonTypeMismatchError, got %v", err)
	}

	rows := [][]any{{int64(1)}, {struct{}{}}}
	if err := rm.Sort(rows, nil); err == nil {
		t.Error("Sort: expected error for uncomparable value")
	}

	if _, err := rm.Keys("missing"); err == nil {
		t.Error("Keys: expected error for unknown field")
	}
}

func TestHash(t *testing.T) {
	name := column(t, schema.TypeString, "name")
	name.SetCaseInsensitive(true)
	rm := New(name, column(t, schema.TypeBigNumber, "amount"))

	a := []any{"Alice", decimal.RequireFromString("10.50")}
	b := []any{"ALICE", decimal.RequireFromString("10.5")}
	c := []any{"alice", decimal.RequireFromString("11")}

	ha, err := rm.Hash(a, nil)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	hb, _ := rm.Hash(b, nil)
	hc, _ := rm.Hash(c, nil)
	if ha != hb {
		t.Errorf("equal rows hash differently: %x != %x", ha, hb)
	}
	if ha == hc {
		t.Error("different rows hash equal")
	}

	// Restricted to the name column, a and c are equal.
	ka, _ := rm.Hash(a, []int{0})
	kc, _ := rm.Hash(c, []int{0})
	if ka != kc {
		t.Errorf("key hash differs: %x != %x", ka, kc)
	}
}

func TestConvertRow(t *testing.T) {
	src := New(
		column(t, schema.TypeString, "id"),
		column(t, schema.TypeString, "active"),
		column(t, schema.TypeString, "born"),
	)
	born := column(t, schema.TypeDate, "born")
	born.SetConversionMask("yyyy-MM-dd")
	dst := New(column(t, schema.TypeInteger, "id"), column(t, schema.TypeBoolean, "active"), born)

	out, err := dst.ConvertRow(src, []any{" 42 ", "Y", "1990-05-17"})
	if err != nil {
		t.Fatalf("ConvertRow: %v", err)
	}
	if out[0] != int64(42) {
		t.Errorf("id = %v, want 42", out[0])
	}
	if out[1] != true {
		t.Errorf("active = %v, want true", out[1])
	}
	if d, ok := out[2].(time.Time); !ok || !d.Equal(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("born = %v", out[2])
	}

	if _, err := dst.ConvertRow(src, []any{"x", "Y", "1990-05-17"}); err == nil {
		t.Error("expected conversion error")
	}
	if _, err := dst.ConvertRow(New(), nil); err == nil {
		t.Error("expected error for column count mismatch")
	}
}

func TestFormatRow(t *testing.T) {
	amount := column(t, schema.TypeNumber, "amount")
	amount.SetConversionMask("#,##0.00")
	rm := New(column(t, schema.TypeString, "name"), amount, column(t, schema.TypeBoolean, "ok"))

	got, err := rm.FormatRow([]any{"x", 1234.5, nil})
	if err != nil {
		t.Fatalf("FormatRow: %v", err)
	}
	want := []string{"x", "1,234.50", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FormatRow[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	rm := New(column(t, schema.TypeString, "name"))
	c := rm.Clone()
	c.Descriptor(0).SetName("other")
	if rm.Descriptor(0).Name() != "name" {
		t.Error("Clone shares descriptors")
	}
	if rm.IndexOf("NAME") != 0 || rm.IndexOf("other") != -1 {
		t.Error("IndexOf on original is wrong")
	}
}

// sliceCursor serves one row of preset values.
type sliceCursor struct {
	cols []schema.ColumnMeta
	vals []any
}

func (c *sliceCursor) ColumnCount() int { return len(c.cols) }

func (c *sliceCursor) Column(i int) (schema.ColumnMeta, error) {
	if i < 1 || i > len(c.cols) {
		return schema.ColumnMeta{}, fmt.Errorf("column %d out of range", i)
	}
	return c.cols[i-1], nil
}

func get[T any](c *sliceCursor, i int) (T, bool, error) {
	var zero T
	v := c.vals[i-1]
	if v == nil {
		return zero, false, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("column %d holds %T", i, v)
	}
	return t, true, nil
}

func (c *sliceCursor) String(i int) (string, bool, error)   { return get[string](c, i) }
func (c *sliceCursor) Int64(i int) (int64, bool, error)     { return get[int64](c, i) }
func (c *sliceCursor) Float64(i int) (float64, bool, error) { return get[float64](c, i) }
func (c *sliceCursor) Bool(i int) (bool, bool, error)       { return get[bool](c, i) }
func (c *sliceCursor) Bytes(i int) ([]byte, bool, error)    { return get[[]byte](c, i) }
func (c *sliceCursor) Date(i int) (time.Time, bool, error)  { return get[time.Time](c, i) }
func (c *sliceCursor) Time(i int) (time.Time, bool, error)  { return get[time.Time](c, i) }

func (c *sliceCursor) Decimal(i int) (decimal.Decimal, bool, error) {
	return get[decimal.Decimal](c, i)
}

func (c *sliceCursor) Timestamp(i int) (time.Time, bool, error) {
	return get[time.Time](c, i)
}

func TestFromCursorAndReadRow(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cur := &sliceCursor{
		cols: []schema.ColumnMeta{
			{Name: "name", SQLType: schema.SQLVarChar, DisplaySize: 20},
			{Name: "id", SQLType: schema.SQLInteger},
			{Name: "price", SQLType: schema.SQLDecimal, Precision: 10, Scale: 2},
			{Name: "day", SQLType: schema.SQLDate},
		},
		vals: []any{"widget", int64(7), nil, day},
	}

	rm, err := FromCursor(schema.NewRegistry(), nil, cur)
	if err != nil {
		t.Fatalf("FromCursor: %v", err)
	}

	wantTypes := []schema.SemanticType{schema.TypeString, schema.TypeInteger, schema.TypeNumber, schema.TypeDate}
	if rm.Len() != len(wantTypes) {
		t.Fatalf("Len = %d, want %d", rm.Len(), len(wantTypes))
	}
	for i, want := range wantTypes {
		if got := rm.Descriptor(i).Type(); got != want {
			t.Errorf("column %d type = %s, want %s", i, got, want)
		}
	}
	if rm.Descriptor(0).Length() != 20 {
		t.Errorf("name length = %d, want 20", rm.Descriptor(0).Length())
	}

	row, err := rm.ReadRow(nil, cur)
	if err != nil {
		t.Fatalf("ReadRow: %v", err)
	}
	if row[0] != "widget" || row[1] != int64(7) || row[2] != nil {
		t.Errorf("row = %v", row)
	}
	if d, ok := row[3].(time.Time); !ok || !d.Equal(day) {
		t.Errorf("day = %v, want %v", row[3], day)
	}

	cur.vals[1] = "seven"
	if _, err := rm.ReadRow(nil, cur); err == nil {
		t.Error("expected extraction error")
	} else {
		var extract *schema.CursorExtractionError
		if !errors.As(err, &extract) || extract.Column != 2 {
			t.Errorf("error = %v, want CursorExtractionError for column 2", err)
		}
	}
}
