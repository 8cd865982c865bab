package schema

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collationOptions maps a strength to collator options.
// Strength 2 and 3 use full tertiary comparison; 3 additionally breaks ties on code points.
func collationOptions(strength int) []collate.Option {
	switch strength {
	case StrengthPrimary:
		return []collate.Option{collate.Loose}
	case StrengthSecondary:
		return []collate.Option{collate.IgnoreCase}
	default:
		return nil
	}
}

func collationTag(locale string) language.Tag {
	if locale == "" {
		return language.Und
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// collators returns the pool of collators for m. A collator is not safe for
// concurrent use, so each comparison borrows one.
func (m *Meta) collators() *sync.Pool {
	if p := m.cache.collators.Load(); p != nil {
		return p
	}
	tag := collationTag(m.cfg.collation.Locale)
	opts := collationOptions(m.cfg.collation.Strength)
	p := &sync.Pool{New: func() any { return collate.New(tag, opts...) }}
	if m.cache.collators.CompareAndSwap(nil, p) {
		return p
	}
	return m.cache.collators.Load()
}

func (m *Meta) collate(a, b string) int {
	pool := m.collators()
	c := pool.Get().(*collate.Collator)
	defer pool.Put(c)

	r := c.CompareString(a, b)
	if r == 0 && m.cfg.collation.Strength >= StrengthIdentical {
		r = strings.Compare(a, b)
	}
	return r
}

// collationKey returns a sort key that is equal for strings the collator treats as equal.
func (m *Meta) collationKey(s string) []byte {
	pool := m.collators()
	c := pool.Get().(*collate.Collator)
	defer pool.Put(c)

	var buf collate.Buffer
	key := c.KeyFromString(&buf, s)
	out := make([]byte, len(key), len(key)+len(s))
	copy(out, key)
	if m.cfg.collation.Strength >= StrengthIdentical {
		out = append(out, s...)
	}
	return out
}
