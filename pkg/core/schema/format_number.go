package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencySign is the mask placeholder replaced by the currency symbol.
const currencySign = "¤"

// numberFormat is a compiled decimal mask such as "#,##0.00".
type numberFormat struct {
	prefix, suffix string
	minInt         int
	minFrac        int
	maxFrac        int // -1: shortest exact representation
	groupSize      int

	decimal  string
	group    string
	currency string
}

func (m *Meta) numberFormat() *numberFormat {
	if f := m.cache.number.Load(); f != nil {
		return f
	}
	f := compileNumberFormat(m)
	m.cache.number.Store(f)
	return f
}

func compileNumberFormat(m *Meta) *numberFormat {
	dec, grp := localeSymbols(m.cfg.locale)
	if m.cfg.decimalSymbol != "" {
		dec = m.cfg.decimalSymbol
	}
	if m.cfg.groupingSymbol != "" {
		grp = m.cfg.groupingSymbol
	}
	f := &numberFormat{decimal: dec, group: grp, currency: m.cfg.currencySymbol, minInt: 1}

	if m.cfg.mask == "" {
		switch {
		case m.typ == TypeInteger:
			f.maxFrac = 0
		case m.cfg.precision >= 0 && m.typ != TypeString:
			f.minFrac, f.maxFrac = m.cfg.precision, m.cfg.precision
		default:
			f.maxFrac = -1
		}
		return f
	}

	mask := m.cfg.mask
	if i := strings.IndexByte(mask, ';'); i >= 0 {
		mask = mask[:i]
	}
	first := strings.IndexAny(mask, "#0,.")
	if first < 0 {
		f.prefix = mask
		f.maxFrac = -1
		return f
	}
	last := strings.LastIndexAny(mask, "#0,.")
	f.prefix, f.suffix = mask[:first], mask[last+1:]
	digits := mask[first : last+1]

	intPart, fracPart, hasPoint := strings.Cut(digits, ".")
	f.minInt = strings.Count(intPart, "0")
	if i := strings.LastIndexByte(intPart, ','); i >= 0 {
		f.groupSize = len(intPart) - i - 1
	}
	if hasPoint {
		f.minFrac = strings.Count(fracPart, "0")
		f.maxFrac = strings.Count(fracPart, "0") + strings.Count(fracPart, "#")
	}
	return f
}

var localeSymbolCache sync.Map

// localeSymbols derives the decimal and grouping symbols of a locale by
// formatting a known number. An empty locale uses "." and ",".
func localeSymbols(locale string) (dec, grp string) {
	if locale == "" {
		return ".", ","
	}
	if v, ok := localeSymbolCache.Load(locale); ok {
		s := v.([2]string)
		return s[0], s[1]
	}
	dec, grp = ".", ","
	if tag, err := language.Parse(locale); err == nil {
		r := []rune(message.NewPrinter(tag).Sprintf("%.1f", 1234.5))
		if len(r) >= 3 {
			dec = string(r[len(r)-2])
		}
		switch {
		case len(r) == 7:
			grp = string(r[1])
		case dec == ",":
			grp = "."
		}
	}
	localeSymbolCache.Store(locale, [2]string{dec, grp})
	return dec, grp
}

// render lays out plain digits ("1234.50", no sign) according to the mask.
func (f *numberFormat) render(neg bool, digits string) string {
	intPart, frac, _ := strings.Cut(digits, ".")
	if f.maxFrac >= 0 {
		for len(frac) > f.minFrac && strings.HasSuffix(frac, "0") {
			frac = frac[:len(frac)-1]
		}
		for len(frac) < f.minFrac {
			frac += "0"
		}
	}

	intPart = strings.TrimLeft(intPart, "0")
	for len(intPart) < f.minInt {
		intPart = "0" + intPart
	}
	if intPart == "" && frac == "" {
		intPart = "0"
	}
	if f.groupSize > 0 && f.group != "" && len(intPart) > f.groupSize {
		intPart = groupDigits(intPart, f.groupSize, f.group)
	}

	var sb strings.Builder
	if neg && strings.Trim(digits, "0.") != "" {
		sb.WriteByte('-')
	}
	sb.WriteString(strings.ReplaceAll(f.prefix, currencySign, f.currency))
	sb.WriteString(intPart)
	if frac != "" {
		sb.WriteString(f.decimal)
		sb.WriteString(frac)
	}
	sb.WriteString(strings.ReplaceAll(f.suffix, currencySign, f.currency))
	return sb.String()
}

func groupDigits(s string, size int, sep string) string {
	var sb strings.Builder
	head := len(s) % size
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += size {
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(s[i : i+size])
	}
	return sb.String()
}

func (f *numberFormat) formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	return f.render(neg, strings.TrimPrefix(s, "-"))
}

func (f *numberFormat) formatFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return f.render(math.Signbit(x), strconv.FormatFloat(math.Abs(x), 'f', f.maxFrac, 64))
}

func (f *numberFormat) formatDecimal(d decimal.Decimal) string {
	abs := d.Abs()
	var digits string
	if f.maxFrac < 0 {
		digits = abs.String()
	} else {
		digits = abs.StringFixed(int32(f.maxFrac))
	}
	return f.render(d.Sign() < 0, digits)
}

// clean strips mask decorations from s and returns plain digits for strconv.
func (f *numberFormat) clean(s string) string {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if p := strings.ReplaceAll(f.prefix, currencySign, f.currency); p != "" {
		s = strings.TrimPrefix(s, p)
	}
	if p := strings.ReplaceAll(f.suffix, currencySign, f.currency); p != "" {
		s = strings.TrimSuffix(s, p)
	}
	if f.currency != "" {
		s = strings.ReplaceAll(s, f.currency, "")
	}
	if f.group != "" && f.group != f.decimal {
		s = strings.ReplaceAll(s, f.group, "")
	}
	if f.decimal != "." {
		s = strings.ReplaceAll(s, f.decimal, ".")
	}
	s = strings.TrimSpace(s)
	if neg {
		s = "-" + s
	}
	return s
}

func (f *numberFormat) parseInt(s string) (int64, error) {
	c := f.clean(s)
	if n, err := strconv.ParseInt(c, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(c)
	if err != nil {
		return 0, fmt.Errorf("invalid integer '%s'", s)
	}
	return decimalToInt(d.Truncate(0))
}

func (f *numberFormat) parseFloat(s string) (float64, error) {
	x, err := strconv.ParseFloat(f.clean(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return x, nil
}

func (f *numberFormat) parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(f.clean(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid big number '%s'", s)
	}
	return d, nil
}

func decimalToInt(d decimal.Decimal) (int64, error) {
	b := d.Truncate(0).BigInt()
	if !b.IsInt64() {
		return 0, fmt.Errorf("value %s overflows int64", d.String())
	}
	return b.Int64(), nil
}

func floatToInt(x float64) (int64, error) {
	r := math.Round(x)
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v overflows int64", x)
	}
	return int64(r), nil
}
