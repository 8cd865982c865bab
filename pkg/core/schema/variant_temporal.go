package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateVariant keeps millisecond precision.
type dateVariant struct{}

func (dateVariant) native(m *Meta, v any) (any, error) {
	t, err := toTime(timestampVariant{}, m, v)
	if t == nil || err != nil {
		return t, err
	}
	return t.(time.Time).Truncate(time.Millisecond), nil
}

func (dateVariant) parse(m *Meta, s string) (any, error) {
	t, err := m.dateFormat().parse(s)
	if err != nil {
		return nil, err
	}
	return t.Truncate(time.Millisecond), nil
}

func (dateVariant) format(m *Meta, v any) (string, error) {
	return timestampVariant{}.format(m, v)
}

func (dateVariant) compare(_ *Meta, a, b any) int {
	return a.(time.Time).Compare(b.(time.Time))
}

// timestampVariant keeps nanosecond precision.
type timestampVariant struct{}

func (timestampVariant) native(m *Meta, v any) (any, error) {
	return toTime(timestampVariant{}, m, v)
}

func (timestampVariant) parse(m *Meta, s string) (any, error) {
	t, err := m.dateFormat().parse(s)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (timestampVariant) format(m *Meta, v any) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", errUnsupportedValue
	}
	return m.dateFormat().format(t)
}

func (timestampVariant) compare(_ *Meta, a, b any) int {
	return a.(time.Time).Compare(b.(time.Time))
}

// toTime accepts times, epoch milliseconds and text.
func toTime(p variant, m *Meta, v any) (any, error) {
	if n, ok := asInt64(v); ok {
		return time.UnixMilli(n).In(m.TimeZone()), nil
	}
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case float64:
		return time.UnixMilli(int64(x)).In(m.TimeZone()), nil
	case decimal.Decimal:
		return time.UnixMilli(x.IntPart()).In(m.TimeZone()), nil
	case string:
		return parseTrimmed(p, m, x)
	case []byte:
		return parseTrimmed(p, m, string(x))
	}
	return nil, errUnsupportedValue
}
