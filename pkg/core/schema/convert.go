package schema

import (
	"bytes"
	"errors"
	"math/big"
	"net/netip"
	"time"

	"github.com/shopspring/decimal"
)

func (m *Meta) conversionError(to SemanticType, v any, err error) error {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return err
	}
	return &ConversionError{Field: m.cfg.name, From: m.typ, To: to, Value: v, Err: err}
}

// GetString renders v as text. Strings are trimmed; other types use the mask.
func (m *Meta) GetString(v any) (string, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return "", false, m.wrapErr(TypeString, v, err)
	}
	if s, ok := n.(string); ok && m.typ == TypeString {
		return m.cfg.trim.Apply(s), true, nil
	}
	s, err := m.ops.format(m, n)
	if err != nil {
		return "", false, m.conversionError(TypeString, v, err)
	}
	return s, true, nil
}

// GetInteger returns v as int64. Numbers are rounded, dates give epoch milliseconds.
func (m *Meta) GetInteger(v any) (int64, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return 0, false, m.wrapErr(TypeInteger, v, err)
	}
	var out any
	switch x := n.(type) {
	case int64:
		return x, true, nil
	case time.Time:
		return x.UnixMilli(), true, nil
	case netip.Addr:
		out, err = decimalToInt(decimal.NewFromBigInt(addrBig(x), 0))
	case string:
		out, err = parseTrimmed(integerVariant{}, m, x)
	case []byte:
		out, err = parseTrimmed(integerVariant{}, m, string(x))
	default:
		out, err = integerVariant{}.native(m, x)
	}
	if err != nil {
		return 0, false, m.conversionError(TypeInteger, v, err)
	}
	if out == nil {
		return 0, false, nil
	}
	return out.(int64), true, nil
}

// GetNumber returns v as float64.
func (m *Meta) GetNumber(v any) (float64, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return 0, false, m.wrapErr(TypeNumber, v, err)
	}
	var out any
	switch x := n.(type) {
	case float64:
		return x, true, nil
	case time.Time:
		return float64(x.UnixMilli()), true, nil
	case bool:
		if x {
			return 1, true, nil
		}
		return 0, true, nil
	case netip.Addr:
		f, _ := new(big.Float).SetInt(addrBig(x)).Float64()
		return f, true, nil
	case []byte:
		out, err = parseTrimmed(numberVariant{}, m, string(x))
	default:
		out, err = numberVariant{}.native(m, x)
	}
	if err != nil {
		return 0, false, m.conversionError(TypeNumber, v, err)
	}
	if out == nil {
		return 0, false, nil
	}
	return out.(float64), true, nil
}

// GetBigNumber returns v as an arbitrary precision decimal.
func (m *Meta) GetBigNumber(v any) (decimal.Decimal, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return decimal.Zero, false, m.wrapErr(TypeBigNumber, v, err)
	}
	var out any
	switch x := n.(type) {
	case decimal.Decimal:
		return x, true, nil
	case time.Time:
		return decimal.NewFromInt(x.UnixMilli()), true, nil
	case bool:
		if x {
			return decimal.NewFromInt(1), true, nil
		}
		return decimal.Zero, true, nil
	case netip.Addr:
		return decimal.NewFromBigInt(addrBig(x), 0), true, nil
	case []byte:
		out, err = parseTrimmed(bigNumberVariant{}, m, string(x))
	default:
		out, err = bigNumberVariant{}.native(m, x)
	}
	if err != nil {
		return decimal.Zero, false, m.conversionError(TypeBigNumber, v, err)
	}
	if out == nil {
		return decimal.Zero, false, nil
	}
	return out.(decimal.Decimal), true, nil
}

// GetDate returns v as a time. Numbers are epoch milliseconds; text is parsed with the mask.
func (m *Meta) GetDate(v any) (time.Time, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return time.Time{}, false, m.wrapErr(TypeDate, v, err)
	}
	switch n.(type) {
	case bool, netip.Addr:
		return time.Time{}, false, m.conversionError(TypeDate, v, errUnsupportedValue)
	}
	out, err := timestampVariant{}.native(m, n)
	if err != nil {
		return time.Time{}, false, m.conversionError(TypeDate, v, err)
	}
	if out == nil {
		return time.Time{}, false, nil
	}
	return out.(time.Time), true, nil
}

// GetBoolean returns v as a bool; numbers are true when non-zero.
func (m *Meta) GetBoolean(v any) (bool, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return false, false, m.wrapErr(TypeBoolean, v, err)
	}
	switch n.(type) {
	case time.Time, netip.Addr:
		return false, false, m.conversionError(TypeBoolean, v, errUnsupportedValue)
	}
	out, err := booleanVariant{}.native(m, n)
	if err != nil {
		return false, false, m.conversionError(TypeBoolean, v, err)
	}
	if out == nil {
		return false, false, nil
	}
	return out.(bool), true, nil
}

// GetBinary returns v as bytes. Non-binary values are rendered as text first.
func (m *Meta) GetBinary(v any) ([]byte, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return nil, false, m.wrapErr(TypeBinary, v, err)
	}
	if b, ok := n.([]byte); ok {
		return b, true, nil
	}
	s, ok, err := m.GetString(v)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []byte(s), true, nil
}

// GetInternetAddress returns v as an address.
func (m *Meta) GetInternetAddress(v any) (netip.Addr, bool, error) {
	n, err := m.decode(v)
	if err != nil || n == nil {
		return netip.Addr{}, false, m.wrapErr(TypeInternetAddress, v, err)
	}
	switch x := n.(type) {
	case time.Time, bool, float64:
		return netip.Addr{}, false, m.conversionError(TypeInternetAddress, v, errUnsupportedValue)
	case string:
		n = m.cfg.trim.Apply(x)
	}
	out, err := inetVariant{}.native(m, n)
	if err != nil {
		return netip.Addr{}, false, m.conversionError(TypeInternetAddress, v, err)
	}
	if out == nil {
		return netip.Addr{}, false, nil
	}
	return out.(netip.Addr), true, nil
}

func (m *Meta) wrapErr(to SemanticType, v any, err error) error {
	if err == nil {
		return nil
	}
	return m.conversionError(to, v, err)
}

// Convert reads v through src and returns it in this descriptor's native form.
// The result is always in normal storage; use EncodeStorage for the encoded form.
// A nil src means v already belongs to this descriptor.
func (m *Meta) Convert(src Descriptor, v any) (any, error) {
	if src == nil {
		src = m
	}
	var (
		out any
		ok  bool
		err error
	)
	switch m.typ {
	case TypeString:
		var s string
		s, ok, err = src.GetString(v)
		s = m.cfg.trim.Apply(s)
		if ok && s == "" && !m.cfg.nullsDifferent {
			ok = false
		}
		out = s
	case TypeInteger:
		out, ok, err = wrap(src.GetInteger(v))
	case TypeNumber:
		out, ok, err = wrap(src.GetNumber(v))
	case TypeBigNumber:
		out, ok, err = wrap(src.GetBigNumber(v))
	case TypeDate:
		var t time.Time
		t, ok, err = src.GetDate(v)
		out = t.Truncate(time.Millisecond)
	case TypeTimestamp:
		out, ok, err = wrap(src.GetDate(v))
	case TypeBoolean:
		out, ok, err = wrap(src.GetBoolean(v))
	case TypeBinary:
		out, ok, err = wrap(src.GetBinary(v))
	case TypeInternetAddress:
		out, ok, err = wrap(src.GetInternetAddress(v))
	default:
		if v == nil {
			return nil, nil
		}
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return out, nil
}

// IsNull reports whether v is absent. For strings a value that trims to "" is
// null unless nulls and empty strings are different.
func (m *Meta) IsNull(v any) (bool, error) {
	if v == nil {
		return true, nil
	}
	if m.cfg.storage == StorageNormal && m.typ != TypeString {
		return false, nil
	}
	n, err := m.decode(v)
	if err != nil {
		return false, m.conversionError(m.typ, v, err)
	}
	if n == nil {
		return true, nil
	}
	if s, ok := n.(string); ok && m.typ == TypeString {
		return !m.cfg.nullsDifferent && m.cfg.trim.Apply(s) == "", nil
	}
	return false, nil
}

// Compare orders a and b. Absent values sort first in ascending order;
// a descending direction negates every result.
func (m *Meta) Compare(a, b any) (int, error) {
	var c int
	if x, y, ok := m.encodedPair(a, b); ok {
		c = m.compareEncoded(x, y)
	} else {
		x, err := m.comparable(a)
		if err != nil {
			return 0, err
		}
		y, err := m.comparable(b)
		if err != nil {
			return 0, err
		}
		switch {
		case x == nil && y == nil:
			return 0, nil
		case x == nil:
			c = -1
		case y == nil:
			c = 1
		default:
			c = sign(m.ops.compare(m, x, y))
		}
	}
	if m.cfg.sortDir == SortDescending {
		c = -c
	}
	return c, nil
}

// CompareAcross compares a, a value of m, with b, a value of other.
// The descriptors must share a semantic type; b is converted into m first.
func (m *Meta) CompareAcross(a any, other Descriptor, b any) (int, error) {
	if other.Type() != m.typ {
		return 0, &ComparisonTypeMismatchError{Field: m.cfg.name, Left: m.typ, Right: other.Type()}
	}
	y, err := m.Convert(other, b)
	if err != nil {
		return 0, err
	}
	if y != nil && m.cfg.storage != StorageNormal {
		if y, err = m.EncodeStorage(y); err != nil {
			return 0, err
		}
	}
	return m.Compare(a, y)
}

// comparable returns the native value used for ordering, or nil when v is null.
func (m *Meta) comparable(v any) (any, error) {
	n, err := m.decode(v)
	if err != nil {
		if errors.Is(err, errUnsupportedValue) {
			return nil, &ComparisonTypeMismatchError{Field: m.cfg.name, Left: m.typ, Right: m.typ, Value: v}
		}
		return nil, m.conversionError(m.typ, v, err)
	}
	if s, ok := n.(string); ok && m.typ == TypeString {
		s = m.cfg.trim.Apply(s)
		if s == "" && !m.cfg.nullsDifferent {
			return nil, nil
		}
		return s, nil
	}
	return n, nil
}

func (m *Meta) encodedPair(a, b any) ([]byte, []byte, bool) {
	if !m.binaryStringShortcut() {
		return nil, nil, false
	}
	x, ok := a.([]byte)
	if !ok && a != nil {
		return nil, nil, false
	}
	y, ok := b.([]byte)
	if !ok && b != nil {
		return nil, nil, false
	}
	return x, y, true
}

// compareEncoded orders raw UTF-8 strings without decoding them.
func (m *Meta) compareEncoded(x, y []byte) int {
	xn := x == nil || (len(x) == 0 && !m.cfg.nullsDifferent)
	yn := y == nil || (len(y) == 0 && !m.cfg.nullsDifferent)
	switch {
	case xn && yn:
		return 0
	case xn:
		return -1
	case yn:
		return 1
	}
	return bytes.Compare(x, y)
}
