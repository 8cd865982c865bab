package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Default layouts used when a descriptor has no conversion mask.
const (
	DefaultDateLayout      = "2006/01/02 15:04:05.000"
	DefaultTimestampLayout = "2006/01/02 15:04:05.000000000"
)

// lenientLayouts are tried after the configured layout when parsing is lenient.
var lenientLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"15:04:05.999999999",
}

type dateFormat struct {
	layout    string
	loc       *time.Location
	fallbacks []string
	err       error
}

func (m *Meta) dateFormat() *dateFormat {
	if f := m.cache.date.Load(); f != nil {
		return f
	}
	f := compileDateFormat(m)
	m.cache.date.Store(f)
	return f
}

func compileDateFormat(m *Meta) *dateFormat {
	f := &dateFormat{loc: m.cfg.timeZone}
	if f.loc == nil {
		f.loc = time.UTC
	}
	if m.cfg.mask == "" {
		f.layout = DefaultDateLayout
		if m.typ == TypeTimestamp {
			f.layout = DefaultTimestampLayout
		}
		f.fallbacks = lenientLayouts
		return f
	}
	f.layout, f.err = DateLayout(m.cfg.mask)
	if m.cfg.dateLenient {
		f.fallbacks = lenientLayouts
	}
	return f
}

func (f *dateFormat) format(t time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return t.In(f.loc).Format(f.layout), nil
}

func (f *dateFormat) parse(s string) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	t, err := time.ParseInLocation(f.layout, s, f.loc)
	if err == nil {
		return t, nil
	}
	for _, layout := range f.fallbacks {
		if t, ferr := time.ParseInLocation(layout, s, f.loc); ferr == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date '%s' for layout '%s'", s, f.layout)
}

// DateLayout converts a date mask into a Go time layout. Three mask styles are accepted:
// strftime ("%Y-%m-%d"), UTS #35 patterns ("yyyy-MM-dd HH:mm:ss.SSS") and Go layouts
// ("2006-01-02"). Masks containing digits are taken as Go layouts.
func DateLayout(mask string) (string, error) {
	switch {
	case strings.Contains(mask, "%"):
		layout, err := strftime.Layout(mask)
		if err != nil {
			return "", fmt.Errorf("invalid date mask '%s': %w", mask, err)
		}
		return layout, nil
	case strings.ContainsAny(mask, "0123456789"):
		return mask, nil
	default:
		return uts35Layout(mask)
	}
}

// PortableDateMask renders a strftime mask as a UTS #35 pattern for display.
// Other masks are returned unchanged.
func PortableDateMask(mask string) string {
	if !strings.Contains(mask, "%") {
		return mask
	}
	if p, err := strftime.UTS35(mask); err == nil {
		return p
	}
	return mask
}

// uts35Layout translates the common subset of UTS #35 date fields.
func uts35Layout(mask string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(mask); {
		c := mask[i]
		if c == '\'' {
			end := strings.IndexByte(mask[i+1:], '\'')
			if end < 0 {
				return "", fmt.Errorf("invalid date mask '%s': unterminated quote", mask)
			}
			lit := mask[i+1 : i+1+end]
			if end == 0 {
				lit = "'"
			}
			if tok := layoutToken(lit); tok != "" {
				return "", fmt.Errorf("invalid date mask '%s': literal '%s' contains layout token %q", mask, lit, tok)
			}
			sb.WriteString(lit)
			i += end + 2
			continue
		}
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			sb.WriteByte(c)
			i++
			continue
		}
		n := 1
		for i+n < len(mask) && mask[i+n] == c {
			n++
		}
		field, err := uts35Field(c, n)
		if err != nil {
			return "", fmt.Errorf("invalid date mask '%s': %w", mask, err)
		}
		sb.WriteString(field)
		i += n
	}
	return sb.String(), nil
}

// layoutTokens are the letter-only reference tokens of Go time layouts.
// Digit tokens never reach uts35Layout: masks with digits are Go layouts.
var layoutTokens = []string{"Jan", "Mon", "MST", "PM", "pm"}

// layoutToken returns the Go layout token found in a quoted literal, if any.
func layoutToken(lit string) string {
	for _, tok := range layoutTokens {
		if strings.Contains(lit, tok) {
			return tok
		}
	}
	return ""
}

func uts35Field(c byte, n int) (string, error) {
	switch c {
	case 'y':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M':
		switch {
		case n >= 4:
			return "January", nil
		case n == 3:
			return "Jan", nil
		case n == 2:
			return "01", nil
		}
		return "1", nil
	case 'd':
		if n >= 2 {
			return "02", nil
		}
		return "2", nil
	case 'H':
		return "15", nil
	case 'h':
		if n >= 2 {
			return "03", nil
		}
		return "3", nil
	case 'm':
		if n >= 2 {
			return "04", nil
		}
		return "4", nil
	case 's':
		if n >= 2 {
			return "05", nil
		}
		return "5", nil
	case 'S':
		return strings.Repeat("0", min(n, 9)), nil
	case 'a':
		return "PM", nil
	case 'E':
		if n >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch {
		case n >= 3:
			return "Z07:00", nil
		case n == 2:
			return "Z0700", nil
		}
		return "Z07", nil
	}
	return "", fmt.Errorf("unsupported field '%s'", strings.Repeat(string(c), n))
}
