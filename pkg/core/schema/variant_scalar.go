package schema

import (
	"bytes"
	"fmt"
	"math/big"
	"net"
	"net/netip"
	"strings"

	"github.com/shopspring/decimal"
)

type booleanVariant struct{}

func (booleanVariant) native(m *Meta, v any) (any, error) {
	if n, ok := asInt64(v); ok {
		return n != 0, nil
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case float64:
		return x != 0, nil
	case decimal.Decimal:
		return !x.IsZero(), nil
	case string:
		return parseBooleanText(m, x), nil
	case []byte:
		return parseBooleanText(m, string(x)), nil
	}
	return nil, errUnsupportedValue
}

// parseBooleanText matches the whole text after the descriptor's own trim policy.
// Only text that trims to "" is absent; padded " yes " is false under TrimNone.
func parseBooleanText(m *Meta, s string) any {
	s = m.cfg.trim.Apply(s)
	if s == "" {
		return nil
	}
	return ParseBoolean(s)
}

// parse maps y, yes and true to true in any case. All other text is false.
func (booleanVariant) parse(_ *Meta, s string) (any, error) {
	return ParseBoolean(s), nil
}

// format writes "true"/"false" when the column fits them, "Y"/"N" otherwise.
func (booleanVariant) format(m *Meta, v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", errUnsupportedValue
	}
	if m.cfg.length >= 3 {
		if b {
			return "true", nil
		}
		return "false", nil
	}
	if b {
		return "Y", nil
	}
	return "N", nil
}

func (booleanVariant) compare(_ *Meta, a, b any) int {
	x, y := a.(bool), b.(bool)
	switch {
	case x == y:
		return 0
	case y:
		return -1
	}
	return 1
}

// ParseBoolean reports whether s is y, yes or true, ignoring case.
func ParseBoolean(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true
	}
	return false
}

type binaryVariant struct{}

func (binaryVariant) native(m *Meta, v any) (any, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	}
	s, err := formatAny(m, v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (binaryVariant) parse(_ *Meta, s string) (any, error) { return []byte(s), nil }

func (binaryVariant) format(_ *Meta, v any) (string, error) {
	b, ok := v.([]byte)
	if !ok {
		return "", errUnsupportedValue
	}
	return string(b), nil
}

func (binaryVariant) compare(_ *Meta, a, b any) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}

type inetVariant struct{}

func (inetVariant) native(m *Meta, v any) (any, error) {
	switch x := v.(type) {
	case netip.Addr:
		if !x.IsValid() {
			return nil, nil
		}
		return x.Unmap(), nil
	case netip.Prefix:
		return x.Addr().Unmap(), nil
	case net.IP:
		return addrFromSlice(x)
	case []byte:
		if len(x) == 4 || len(x) == 16 {
			return addrFromSlice(x)
		}
		return parseTrimmed(inetVariant{}, m, string(x))
	case string:
		return parseTrimmed(inetVariant{}, m, x)
	case decimal.Decimal:
		return addrFromBig(x.BigInt())
	}
	if n, ok := asInt64(v); ok {
		return addrFromBig(big.NewInt(n))
	}
	return nil, errUnsupportedValue
}

// parse accepts plain addresses and CIDR notation, keeping the address part.
func (inetVariant) parse(_ *Meta, s string) (any, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, err
		}
		return p.Addr().Unmap(), nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return nil, err
	}
	return a.Unmap(), nil
}

func (inetVariant) format(_ *Meta, v any) (string, error) {
	a, ok := v.(netip.Addr)
	if !ok {
		return "", errUnsupportedValue
	}
	return a.String(), nil
}

// compare orders addresses by the numeric value of their bytes.
func (inetVariant) compare(_ *Meta, a, b any) int {
	return addrBig(a.(netip.Addr)).Cmp(addrBig(b.(netip.Addr)))
}

func addrBig(a netip.Addr) *big.Int {
	return new(big.Int).SetBytes(a.AsSlice())
}

func addrFromSlice(b []byte) (any, error) {
	a, ok := netip.AddrFromSlice(b)
	if !ok {
		return nil, fmt.Errorf("invalid address length %d", len(b))
	}
	return a.Unmap(), nil
}

// addrFromBig maps values below 2^32 to IPv4 and larger ones to IPv6.
func addrFromBig(n *big.Int) (any, error) {
	if n.Sign() < 0 || n.BitLen() > 128 {
		return nil, fmt.Errorf("value %s is not an address", n.String())
	}
	if n.BitLen() <= 32 {
		var b [4]byte
		n.FillBytes(b[:])
		return netip.AddrFrom4(b), nil
	}
	var b [16]byte
	n.FillBytes(b[:])
	return netip.AddrFrom16(b), nil
}

// noneVariant carries values of unknown type unchanged.
type noneVariant struct{}

func (noneVariant) native(_ *Meta, v any) (any, error)    { return v, nil }
func (noneVariant) parse(_ *Meta, s string) (any, error)  { return s, nil }
func (noneVariant) format(_ *Meta, v any) (string, error) { return fmt.Sprint(v), nil }

func (noneVariant) compare(_ *Meta, a, b any) int {
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
