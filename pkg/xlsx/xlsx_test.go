package xlsx

import (
	"bytes"
	"net/netip"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

func testLayout(t *testing.T, reg *schema.Registry) *rowmeta.RowMeta {
	t.Helper()
	cols := []struct {
		typ  schema.SemanticType
		name string
	}{
		{schema.TypeInteger, "id"},
		{schema.TypeString, "name"},
		{schema.TypeNumber, "weight"},
		{schema.TypeBigNumber, "price"},
		{schema.TypeDate, "born"},
		{schema.TypeBoolean, "active"},
		{schema.TypeBinary, "data"},
		{schema.TypeInternetAddress, "ip"},
	}
	rm := rowmeta.New()
	for _, c := range cols {
		d, err := reg.New(c.typ, c.name, -1, -1)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", c.name, err)
		}
		rm.Add(d)
	}
	return rm
}

func TestWriteRead(t *testing.T) {
	reg := schema.NewRegistry()
	rm := testLayout(t, reg)

	born := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), "widget", 1.5, decimal.RequireFromString("12345678901234567890.12"), born, true, []byte{0xde, 0xad}, netip.MustParseAddr("10.0.0.1")},
		{int64(2), nil, nil, nil, nil, false, nil, nil},
	}

	path := filepath.Join(t.TempDir(), "rows.xlsx")
	if err := Write(rm, rows, path, "Items"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, data, err := Read(reg, path, "Items")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Len() != rm.Len() {
		t.Fatalf("Expected %d columns, got %d", rm.Len(), got.Len())
	}
	for i := 0; i < rm.Len(); i++ {
		if got.Descriptor(i).Name() != rm.Descriptor(i).Name() || got.Descriptor(i).Type() != rm.Descriptor(i).Type() {
			t.Errorf("column %d = %s, want %s", i, got.Descriptor(i), rm.Descriptor(i))
		}
	}
	if len(data) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(data))
	}

	first := data[0]
	if first[0] != int64(1) || first[1] != "widget" || first[2] != 1.5 {
		t.Errorf("unexpected scalars: %v", first[:3])
	}
	if d, ok := first[3].(decimal.Decimal); !ok || !d.Equal(decimal.RequireFromString("12345678901234567890.12")) {
		t.Errorf("price = %v", first[3])
	}
	if d, ok := first[4].(time.Time); !ok || !d.Equal(born) {
		t.Errorf("born = %v, want %v", first[4], born)
	}
	if first[5] != true {
		t.Errorf("active = %v", first[5])
	}
	if b, ok := first[6].([]byte); !ok || !bytes.Equal(b, []byte{0xde, 0xad}) {
		t.Errorf("data = %v", first[6])
	}
	if a, ok := first[7].(netip.Addr); !ok || a != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("ip = %v", first[7])
	}

	second := data[1]
	for _, i := range []int{1, 2, 3, 4, 6, 7} {
		if second[i] != nil {
			t.Errorf("column %s = %v, want NULL", got.Descriptor(i).Name(), second[i])
		}
	}
	if second[5] != false {
		t.Errorf("active = %v, want false", second[5])
	}
}

func TestWrite_RowWidth(t *testing.T) {
	reg := schema.NewRegistry()
	rm := testLayout(t, reg)

	err := Write(rm, [][]any{{int64(1)}}, filepath.Join(t.TempDir(), "bad.xlsx"), "")
	if err == nil {
		t.Fatal("Expected error for short row")
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		header string
		name   string
		typ    schema.SemanticType
	}{
		{"id (Integer)", "id", schema.TypeInteger},
		{"price (BigNumber)", "price", schema.TypeBigNumber},
		{"note", "note", schema.TypeString},
		{"odd (Whatever)", "odd (Whatever)", schema.TypeString},
		{"f(x) (Number)", "f(x)", schema.TypeNumber},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			name, typ := parseHeader(tt.header)
			if name != tt.name || typ != tt.typ {
				t.Errorf("parseHeader(%q) = (%q, %s), want (%q, %s)", tt.header, name, typ, tt.name, tt.typ)
			}
		})
	}
}
