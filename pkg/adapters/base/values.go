package base

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// Конвертеры значений драйверов в типы аксессоров schema.Cursor.
// Общая реализация для всех database/sql драйверов: SQLite и MySQL отдают
// текст там, где PostgreSQL и MS SQL отдают типизированные значения.

// timeLayouts - форматы дат, которые драйверы возвращают текстом
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05.999999999",
	"15:04",
}

func cannotConvert(v any, to string) error {
	return fmt.Errorf("cannot convert %T to %s", v, to)
}

func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

// ToString конвертирует значение драйвера в строку
func ToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int, int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	case time.Time:
		return x.Format("2006-01-02 15:04:05.999999999"), nil
	case decimal.Decimal:
		return x.String(), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return fmt.Sprint(v), nil
}

// ToInt64 конвертирует значение драйвера в int64 без потери точности
func ToInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("value %v is not an int64", x)
		}
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case decimal.Decimal:
		if !x.IsInteger() {
			return 0, fmt.Errorf("value %s is not an integer", x)
		}
		return x.IntPart(), nil
	}
	if s, ok := text(v); ok {
		s = strings.TrimSpace(s)
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return n, nil
		}
		// "42.000" от DECIMAL с нулевой дробной частью
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return 0, err
		}
		return d.IntPart(), nil
	}
	return 0, cannotConvert(v, "int64")
}

// ToFloat64 конвертирует значение драйвера в float64
func ToFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	}
	if s, ok := text(v); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	if n, err := ToInt64(v); err == nil {
		return float64(n), nil
	}
	return 0, cannotConvert(v, "float64")
}

// ToDecimal конвертирует значение драйвера в decimal.Decimal
func ToDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	}
	if s, ok := text(v); ok {
		return decimal.NewFromString(strings.TrimSpace(s))
	}
	if n, err := ToInt64(v); err == nil {
		return decimal.NewFromInt(n), nil
	}
	return decimal.Decimal{}, cannotConvert(v, "decimal")
}

// ToBool конвертирует значение драйвера в bool.
// Числа: 0 - false, иначе true. Текст: strconv.ParseBool, затем Y/YES/TRUE.
func ToBool(v any) (bool, error) {
	if x, ok := v.(bool); ok {
		return x, nil
	}
	if s, ok := text(v); ok {
		s = strings.TrimSpace(s)
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
		return schema.ParseBoolean(s), nil
	}
	if n, err := ToInt64(v); err == nil {
		return n != 0, nil
	}
	return false, cannotConvert(v, "bool")
}

// ToTime конвертирует значение драйвера в time.Time.
// Текст без зоны читается как UTC, целые числа - как Unix секунды.
func ToTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case int64:
		return time.Unix(x, 0).UTC(), nil
	}
	if s, ok := text(v); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
	}
	return time.Time{}, cannotConvert(v, "time")
}

// ToBytes конвертирует значение драйвера в []byte (копия)
func ToBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return append([]byte(nil), x...), nil
	case string:
		return []byte(x), nil
	case [16]byte:
		return x[:], nil
	}
	return nil, cannotConvert(v, "bytes")
}
