package schema

import (
	"errors"
	"net/netip"
	"time"

	"github.com/shopspring/decimal"
)

// Descriptor describes how the values of one column are interpreted.
// A row slot is nil (absent), the native Go value of the type, or encoded bytes
// when the storage type is not StorageNormal.
//
// Native forms: String string, Integer int64, Number float64,
// BigNumber decimal.Decimal, Date and Timestamp time.Time, Boolean bool,
// Binary []byte, Internet Address netip.Addr.
type Descriptor interface {
	Name() string
	Type() SemanticType
	StorageType() StorageType
	Length() int
	Precision() int
	TrimType() TrimType
	SortDirection() SortDirection
	NullsAndEmptyAreDifferent() bool
	ConversionMask() string

	IsNumeric() bool
	IsString() bool
	IsDate() bool
	IsBoolean() bool
	IsBinary() bool

	// Convert reinterprets v, a value of src, as a value of this descriptor.
	Convert(src Descriptor, v any) (any, error)
	// IsNull reports whether v is absent under the null/empty policy.
	IsNull(v any) (bool, error)
	// Compare orders two values of this descriptor, returning -1, 0 or 1.
	Compare(a, b any) (int, error)
	// ExtractFromCursor reads the 1-based column of the current cursor row.
	ExtractFromCursor(hook DialectHook, cur Cursor, column int) (any, error)

	// Typed accessors report ok=false for absent values.
	GetString(v any) (string, bool, error)
	GetInteger(v any) (int64, bool, error)
	GetNumber(v any) (float64, bool, error)
	GetBigNumber(v any) (decimal.Decimal, bool, error)
	GetDate(v any) (time.Time, bool, error)
	GetBoolean(v any) (bool, bool, error)
	GetBinary(v any) ([]byte, bool, error)
	GetInternetAddress(v any) (netip.Addr, bool, error)

	String() string
}

// variant holds the behaviour that differs between semantic types.
// Implementations are stateless; per-column settings come from the Meta argument.
type variant interface {
	// native coerces a Go value into the native form. Strings are parsed with m's format.
	native(m *Meta, v any) (any, error)
	// parse reads trimmed, non-empty text.
	parse(m *Meta, s string) (any, error)
	// format renders a native value.
	format(m *Meta, v any) (string, error)
	// compare orders two present native values.
	compare(m *Meta, a, b any) int
}

// variants is indexed by SemanticType. The reserved code has no entry.
var variants = [typeCount]variant{
	TypeNone:            noneVariant{},
	TypeNumber:          numberVariant{},
	TypeString:          stringVariant{},
	TypeDate:            dateVariant{},
	TypeBoolean:         booleanVariant{},
	TypeInteger:         integerVariant{},
	TypeBigNumber:       bigNumberVariant{},
	TypeBinary:          binaryVariant{},
	TypeTimestamp:       timestampVariant{},
	TypeInternetAddress: inetVariant{},
}

// errUnsupportedValue marks a Go value that has no native form for a type.
var errUnsupportedValue = errors.New("unsupported value")

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
