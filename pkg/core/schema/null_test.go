package schema

import (
	"fmt"
	"testing"
)

// nullMatrixValues is the value set of the null/empty comparison matrix.
var nullMatrixValues = []any{nil, "", " ", " 1", " 1 ", "1", "1 "}

// expectedStringCompare is the reference rule: a value is absent when it is nil
// or, unless nulls and empty strings are different, when it trims to "".
// Present values compare as trimmed text.
func expectedStringCompare(a, b any, trim TrimType, different bool) int {
	norm := func(v any) (string, bool) {
		if v == nil {
			return "", true
		}
		s := trim.Apply(v.(string))
		if s == "" && !different {
			return "", true
		}
		return s, false
	}
	x, xn := norm(a)
	y, yn := norm(b)
	switch {
	case xn && yn:
		return 0
	case xn:
		return -1
	case yn:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func TestNullEmptyMatrix(t *testing.T) {
	for _, different := range []bool{false, true} {
		for _, trim := range TrimTypes() {
			for _, dir := range []SortDirection{SortAscending, SortDescending} {
				m := newTestMeta(t, TypeString)
				m.SetNullsAndEmptyAreDifferent(different)
				m.SetTrimType(trim)
				m.SetSortDirection(dir)

				name := fmt.Sprintf("different=%v/trim=%s/%s", different, trim.Code(), dir)
				t.Run(name, func(t *testing.T) {
					for _, a := range nullMatrixValues {
						for _, b := range nullMatrixValues {
							want := expectedStringCompare(a, b, trim, different)
							if dir == SortDescending {
								want = -want
							}
							if got := mustCompare(t, m, a, b); got != want {
								t.Errorf("Compare(%q, %q) = %d, want %d", a, b, got, want)
							}
						}
					}
				})
			}
		}
	}
}

// TestNullEmptyMatrixTables pins whole regimes as literal sign tables over
// nullMatrixValues (rows are a, columns are b, ascending order).
func TestNullEmptyMatrixTables(t *testing.T) {
	tests := []struct {
		name      string
		different bool
		trim      TrimType
		want      [7][7]int
	}{
		{
			name: "not different, no trim",
			trim: TrimNone,
			want: [7][7]int{
				{0, 0, -1, -1, -1, -1, -1},
				{0, 0, -1, -1, -1, -1, -1},
				{1, 1, 0, -1, -1, -1, -1},
				{1, 1, 1, 0, -1, -1, -1},
				{1, 1, 1, 1, 0, -1, -1},
				{1, 1, 1, 1, 1, 0, -1},
				{1, 1, 1, 1, 1, 1, 0},
			},
		},
		{
			name: "not different, trim both",
			trim: TrimBoth,
			want: [7][7]int{
				{0, 0, 0, -1, -1, -1, -1},
				{0, 0, 0, -1, -1, -1, -1},
				{0, 0, 0, -1, -1, -1, -1},
				{1, 1, 1, 0, 0, 0, 0},
				{1, 1, 1, 0, 0, 0, 0},
				{1, 1, 1, 0, 0, 0, 0},
				{1, 1, 1, 0, 0, 0, 0},
			},
		},
		{
			name:      "different, no trim",
			different: true,
			trim:      TrimNone,
			want: [7][7]int{
				{0, -1, -1, -1, -1, -1, -1},
				{1, 0, -1, -1, -1, -1, -1},
				{1, 1, 0, -1, -1, -1, -1},
				{1, 1, 1, 0, -1, -1, -1},
				{1, 1, 1, 1, 0, -1, -1},
				{1, 1, 1, 1, 1, 0, -1},
				{1, 1, 1, 1, 1, 1, 0},
			},
		},
	}

	for _, tt := range tests {
		for _, dir := range []SortDirection{SortAscending, SortDescending} {
			t.Run(fmt.Sprintf("%s/%s", tt.name, dir), func(t *testing.T) {
				m := newTestMeta(t, TypeString)
				m.SetNullsAndEmptyAreDifferent(tt.different)
				m.SetTrimType(tt.trim)
				m.SetSortDirection(dir)

				for i, a := range nullMatrixValues {
					for j, b := range nullMatrixValues {
						want := tt.want[i][j]
						if dir == SortDescending {
							want = -want
						}
						if got := mustCompare(t, m, a, b); got != want {
							t.Errorf("Compare(%q, %q) = %d, want %d", a, b, got, want)
						}
					}
				}
			})
		}
	}
}

// TestNullEmptyDocumentedCases pins the cases called out in the null/empty policy.
func TestNullEmptyDocumentedCases(t *testing.T) {
	tests := []struct {
		name      string
		different bool
		trim      TrimType
		a, b      any
		want      int
	}{
		{"null equals empty", false, TrimNone, nil, "", 0},
		{"null before blank untrimmed", false, TrimNone, nil, " ", -1},
		{"blank after null untrimmed", false, TrimNone, " ", nil, 1},
		{"null equals blank trimmed both", false, TrimBoth, nil, " ", 0},
		{"null equals blank trimmed left", false, TrimLeft, nil, " ", 0},
		{"null equals blank trimmed right", false, TrimRight, nil, " ", 0},
		{"empty before blank untrimmed", false, TrimNone, "", " ", -1},
		{"different: null before empty", true, TrimNone, nil, "", -1},
		{"different: null before blank trimmed", true, TrimBoth, nil, " ", -1},
		{"different: empty equals trimmed blank", true, TrimBoth, "", " ", 0},
		{"trim both makes values equal", false, TrimBoth, " 1 ", "1", 0},
		{"trim left keeps trailing space", false, TrimLeft, " 1 ", "1", 1},
		{"trim right keeps leading space", false, TrimRight, " 1", "1", -1},
		{"untrimmed leading space sorts first", false, TrimNone, " 1", "1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMeta(t, TypeString)
			m.SetNullsAndEmptyAreDifferent(tt.different)
			m.SetTrimType(tt.trim)
			if got := mustCompare(t, m, tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIsNull(t *testing.T) {
	tests := []struct {
		different bool
		trim      TrimType
		value     any
		want      bool
	}{
		{false, TrimNone, nil, true},
		{false, TrimNone, "", true},
		{false, TrimNone, " ", false},
		{false, TrimBoth, " ", true},
		{false, TrimBoth, " x ", false},
		{true, TrimNone, nil, true},
		{true, TrimNone, "", false},
		{true, TrimBoth, " ", false},
	}
	for _, tt := range tests {
		m := newTestMeta(t, TypeString)
		m.SetNullsAndEmptyAreDifferent(tt.different)
		m.SetTrimType(tt.trim)
		got, err := m.IsNull(tt.value)
		if err != nil {
			t.Fatalf("IsNull(%q): %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("different=%v trim=%s IsNull(%q) = %v, want %v", tt.different, tt.trim, tt.value, got, tt.want)
		}
	}
}

func TestIsNullNonString(t *testing.T) {
	m := newTestMeta(t, TypeInteger)
	if null, _ := m.IsNull(int64(0)); null {
		t.Error("IsNull(0) = true, want false")
	}

	m.SetStorageType(StorageBinaryString)
	if null, _ := m.IsNull([]byte{}); !null {
		t.Error("IsNull(empty bytes) = false, want true")
	}
	if null, _ := m.IsNull([]byte("7")); null {
		t.Error("IsNull(\"7\") = true, want false")
	}
}

func TestRegistryNullPolicy(t *testing.T) {
	reg := NewRegistry(WithNullsAndEmptyAreDifferent(true))
	m, err := reg.CreateByName("String")
	if err != nil {
		t.Fatalf("CreateByName: %v", err)
	}
	if null, _ := m.IsNull(""); null {
		t.Error("descriptor from registry did not inherit the null policy")
	}

	// Policy is per descriptor: changing the registry leaves existing descriptors alone.
	reg.SetNullsAndEmptyAreDifferent(false)
	if !m.NullsAndEmptyAreDifferent() {
		t.Error("existing descriptor changed with registry policy")
	}
}
