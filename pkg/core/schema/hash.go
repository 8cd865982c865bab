package schema

import (
	"encoding/binary"
	"math"
	"net/netip"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeebo/xxh3"
)

// NullHash is the hash of every absent value.
const NullHash uint64 = 0

// Hash returns a 64-bit hash of v consistent with Compare: values that compare
// equal hash equal. Absent values hash to NullHash.
func (m *Meta) Hash(v any) (uint64, error) {
	n, err := m.comparable(v)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return NullHash, nil
	}

	var buf [16]byte
	switch x := n.(type) {
	case string:
		switch {
		case m.cfg.collation.Enabled:
			return xxh3.Hash(m.collationKey(x)), nil
		case m.cfg.caseInsensitive:
			return xxh3.HashString(strings.ToLower(x)), nil
		}
		return xxh3.HashString(x), nil
	case int64:
		binary.LittleEndian.PutUint64(buf[:8], uint64(x))
		return xxh3.Hash(buf[:8]), nil
	case float64:
		if x == 0 {
			x = 0 // fold -0
		}
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(x))
		return xxh3.Hash(buf[:8]), nil
	case decimal.Decimal:
		return xxh3.HashString(x.String()), nil
	case time.Time:
		binary.LittleEndian.PutUint64(buf[:8], uint64(x.Unix()))
		binary.LittleEndian.PutUint64(buf[8:], uint64(x.Nanosecond()))
		return xxh3.Hash(buf[:]), nil
	case bool:
		if x {
			buf[0] = 1
		}
		return xxh3.Hash(buf[:1]), nil
	case []byte:
		return xxh3.Hash(x), nil
	case netip.Addr:
		return xxh3.Hash(addrBig(x).Bytes()), nil
	}
	s, err := m.ops.format(m, n)
	if err != nil {
		return 0, m.conversionError(m.typ, v, err)
	}
	return xxh3.HashString(s), nil
}
