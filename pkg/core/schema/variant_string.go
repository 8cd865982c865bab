package schema

import (
	"fmt"
	"math"
	"net/netip"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type stringVariant struct{}

func (stringVariant) native(m *Meta, v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	}
	return formatAny(m, v)
}

func (stringVariant) parse(_ *Meta, s string) (any, error) { return s, nil }

func (stringVariant) format(_ *Meta, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errUnsupportedValue
	}
	return s, nil
}

func (stringVariant) compare(m *Meta, a, b any) int {
	x, y := a.(string), b.(string)
	switch {
	case m.cfg.collation.Enabled:
		return m.collate(x, y)
	case m.cfg.caseInsensitive:
		return sign(strings.Compare(strings.ToLower(x), strings.ToLower(y)))
	default:
		return strings.Compare(x, y)
	}
}

// formatAny renders a Go value of any supported kind with m's masks and symbols.
func formatAny(m *Meta, v any) (string, error) {
	if n, ok := asInt64(v); ok {
		return m.numberFormat().formatInt(n), nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case float64:
		return m.numberFormat().formatFloat(x), nil
	case float32:
		return m.numberFormat().formatFloat(float64(x)), nil
	case decimal.Decimal:
		return m.numberFormat().formatDecimal(x), nil
	case bool:
		return booleanVariant{}.format(m, x)
	case time.Time:
		return m.dateFormat().format(x)
	case netip.Addr:
		return x.String(), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", errUnsupportedValue
}

// asInt64 accepts every signed and unsigned integer kind that fits in int64.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}
