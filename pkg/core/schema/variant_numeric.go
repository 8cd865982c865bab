package schema

import (
	"cmp"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

type integerVariant struct{}

func (integerVariant) native(m *Meta, v any) (any, error) {
	if n, ok := asInt64(v); ok {
		return n, nil
	}
	switch x := v.(type) {
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case decimal.Decimal:
		return decimalToInt(x)
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		return parseTrimmed(integerVariant{}, m, x)
	}
	return nil, errUnsupportedValue
}

func (integerVariant) parse(m *Meta, s string) (any, error) {
	return m.numberFormat().parseInt(s)
}

func (integerVariant) format(m *Meta, v any) (string, error) {
	n, ok := v.(int64)
	if !ok {
		return "", errUnsupportedValue
	}
	return m.numberFormat().formatInt(n), nil
}

func (integerVariant) compare(_ *Meta, a, b any) int {
	return cmp.Compare(a.(int64), b.(int64))
}

type numberVariant struct{}

func (numberVariant) native(m *Meta, v any) (any, error) {
	if n, ok := asInt64(v); ok {
		return float64(n), nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case string:
		return parseTrimmed(numberVariant{}, m, x)
	}
	return nil, errUnsupportedValue
}

func (numberVariant) parse(m *Meta, s string) (any, error) {
	return m.numberFormat().parseFloat(s)
}

func (numberVariant) format(m *Meta, v any) (string, error) {
	x, ok := v.(float64)
	if !ok {
		return "", errUnsupportedValue
	}
	return m.numberFormat().formatFloat(x), nil
}

func (numberVariant) compare(_ *Meta, a, b any) int {
	return cmp.Compare(a.(float64), b.(float64))
}

type bigNumberVariant struct{}

func (bigNumberVariant) native(m *Meta, v any) (any, error) {
	if n, ok := asInt64(v); ok {
		return decimal.NewFromInt(n), nil
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), nil
	case *big.Int:
		return decimal.NewFromBigInt(x, 0), nil
	case string:
		return parseTrimmed(bigNumberVariant{}, m, x)
	}
	return nil, errUnsupportedValue
}

func (bigNumberVariant) parse(m *Meta, s string) (any, error) {
	return m.numberFormat().parseDecimal(s)
}

func (bigNumberVariant) format(m *Meta, v any) (string, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return "", errUnsupportedValue
	}
	return m.numberFormat().formatDecimal(d), nil
}

func (bigNumberVariant) compare(_ *Meta, a, b any) int {
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

// parseTrimmed parses s without surrounding whitespace; blank text is absent.
func parseTrimmed(p variant, m *Meta, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return p.parse(m, s)
}
