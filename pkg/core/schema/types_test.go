package schema

import (
	"errors"
	"testing"
)

func TestEveryTypeHasVariant(t *testing.T) {
	for _, typ := range Types() {
		if variants[typ] == nil {
			t.Errorf("type %s has no variant", typ)
		}
	}
	if len(TypeNames()) != len(Types()) {
		t.Errorf("TypeNames() has %d entries, want %d", len(TypeNames()), len(Types()))
	}
	if len(TypeDescriptions(DefaultMessages)) != len(Types()) {
		t.Errorf("TypeDescriptions() has %d entries, want %d", len(TypeDescriptions(DefaultMessages)), len(Types()))
	}
}

func TestTypeNamesOrder(t *testing.T) {
	want := []string{"None", "Number", "String", "Date", "Boolean", "Integer",
		"BigNumber", "Binary", "Timestamp", "Internet Address"}
	got := TypeNames()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TypeNames()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseSemanticType(t *testing.T) {
	tests := []struct {
		input   string
		want    SemanticType
		wantErr bool
	}{
		{"String", TypeString, false},
		{"bignumber", TypeBigNumber, false},
		{"Internet Address", TypeInternetAddress, false},
		{"internetaddress", TypeInternetAddress, false},
		{"5", TypeInteger, false},
		{"varchar", TypeString, false},
		{"7", TypeNone, true},
		{"42", TypeNone, true},
		{"Serializable", TypeNone, true},
		{"", TypeNone, true},
		{"Money", TypeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSemanticType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSemanticType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				var ute *UnknownTypeError
				if !errors.As(err, &ute) {
					t.Errorf("error %T is not *UnknownTypeError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSemanticType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	reg := NewRegistry()
	for _, typ := range Types() {
		m, err := reg.New(typ, "f", -1, -1)
		if err != nil {
			t.Fatalf("New(%s): %v", typ, err)
		}
		want := typ == TypeInteger || typ == TypeNumber || typ == TypeBigNumber
		if m.IsNumeric() != want {
			t.Errorf("%s.IsNumeric() = %v, want %v", typ, m.IsNumeric(), want)
		}
	}
}

func TestTrimTypeRoundTrip(t *testing.T) {
	for _, tt := range TrimTypes() {
		if got := TrimTypeFromDescription(tt.Description(), DefaultMessages); got != tt {
			t.Errorf("TrimTypeFromDescription(%q) = %v, want %v", tt.Description(), got, tt)
		}
		if got := TrimTypeFromCode(tt.Code()); got != tt {
			t.Errorf("TrimTypeFromCode(%q) = %v, want %v", tt.Code(), got, tt)
		}
	}

	for _, s := range []string{"", "middle", "NULL", " both"} {
		if got := TrimTypeFromCode(s); got != TrimNone {
			t.Errorf("TrimTypeFromCode(%q) = %v, want none", s, got)
		}
		if got := TrimTypeFromDescription(s, DefaultMessages); got != TrimNone {
			t.Errorf("TrimTypeFromDescription(%q) = %v, want none", s, got)
		}
	}

	if got := TrimType(99).Code(); got != "none" {
		t.Errorf("TrimType(99).Code() = %q, want none", got)
	}
}

func TestTrimTypeLocalizedMessages(t *testing.T) {
	ru := Messages{"trim.both": "Обе стороны", "trim.left": "Слева"}

	if got := TrimBoth.Describe(ru); got != "Обе стороны" {
		t.Errorf("Describe() = %q", got)
	}
	// Missing keys fall back to English.
	if got := TrimRight.Describe(ru); got != "Right" {
		t.Errorf("Describe() = %q, want Right", got)
	}
	for _, tt := range TrimTypes() {
		if got := TrimTypeFromDescription(tt.Describe(ru), ru); got != tt {
			t.Errorf("round trip of %v through %q gave %v", tt, tt.Describe(ru), got)
		}
	}
}

func TestTrimApply(t *testing.T) {
	tests := []struct {
		trim TrimType
		in   string
		want string
	}{
		{TrimNone, " a ", " a "},
		{TrimLeft, " a ", "a "},
		{TrimRight, " a ", " a"},
		{TrimBoth, "\t a \n", "a"},
	}
	for _, tt := range tests {
		if got := tt.trim.Apply(tt.in); got != tt.want {
			t.Errorf("%v.Apply(%q) = %q, want %q", tt.trim, tt.in, got, tt.want)
		}
	}
}

func TestParseStorageAndSort(t *testing.T) {
	if s, err := ParseStorageType("binary-string"); err != nil || s != StorageBinaryString {
		t.Errorf("ParseStorageType(binary-string) = %v, %v", s, err)
	}
	if _, err := ParseStorageType("lazy"); err == nil {
		t.Error("expected error for unknown storage type")
	}
	if d, err := ParseSortDirection("DESC"); err != nil || d != SortDescending {
		t.Errorf("ParseSortDirection(DESC) = %v, %v", d, err)
	}
	if _, err := ParseDialect("oracle"); err == nil {
		t.Error("expected error for unsupported dialect")
	}
}
