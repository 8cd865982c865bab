package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/htmlindex"
)

// The zstd encoder and decoder are safe for concurrent EncodeAll/DecodeAll calls.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) })
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) { return zstd.NewReader(nil) })
)

func compress(b []byte) ([]byte, error) {
	enc, err := zstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return enc.EncodeAll(b, nil), nil
}

func decompress(b []byte) ([]byte, error) {
	dec, err := zstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	out, err := dec.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return out, nil
}

func isUTF8(enc string) bool {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func decodeCharset(enc string, b []byte) (string, error) {
	if isUTF8(enc) {
		return string(b), nil
	}
	e, err := htmlindex.Get(enc)
	if err != nil {
		return "", fmt.Errorf("unknown encoding '%s': %w", enc, err)
	}
	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), nil
}

func encodeCharset(enc string, s string) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(s), nil
	}
	e, err := htmlindex.Get(enc)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding '%s': %w", enc, err)
	}
	out, err := e.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

// DecodeStorage returns the native form of v. Values in normal storage are
// coerced to the native Go type; encoded bytes are decoded and parsed with the
// storage metadata.
func (m *Meta) DecodeStorage(v any) (any, error) {
	n, err := m.decode(v)
	if err != nil {
		return nil, m.conversionError(m.typ, v, err)
	}
	return n, nil
}

// EncodeStorage returns v in this descriptor's storage form.
func (m *Meta) EncodeStorage(v any) (any, error) {
	if m.cfg.storage == StorageNormal {
		return m.DecodeStorage(v)
	}
	if b, ok := v.([]byte); ok && m.typ != TypeBinary {
		return b, nil
	}
	n, err := m.ops.native(m, v)
	if err != nil {
		return nil, m.conversionError(m.typ, v, err)
	}
	if n == nil {
		return nil, nil
	}
	b, err := m.encodeNative(n)
	if err != nil {
		return nil, m.conversionError(m.typ, v, err)
	}
	return b, nil
}

func (m *Meta) encodeNative(n any) ([]byte, error) {
	var b []byte
	if raw, ok := n.([]byte); ok {
		b = raw
	} else {
		s, err := m.ops.format(m.formatSource(), n)
		if err != nil {
			return nil, err
		}
		if b, err = encodeCharset(m.cfg.encoding, s); err != nil {
			return nil, err
		}
	}
	if m.cfg.storage == StorageCompressed {
		return compress(b)
	}
	return b, nil
}

// decode turns a stored value into its native form; nil means absent.
func (m *Meta) decode(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if m.cfg.storage != StorageNormal {
		if b, ok := v.([]byte); ok {
			return m.decodeBytes(b)
		}
	}
	return m.ops.native(m, v)
}

func (m *Meta) decodeBytes(b []byte) (any, error) {
	if len(b) == 0 && !m.cfg.nullsDifferent {
		return nil, nil
	}
	if m.cfg.storage == StorageCompressed && len(b) > 0 {
		var err error
		if b, err = decompress(b); err != nil {
			return nil, err
		}
		if len(b) == 0 && !m.cfg.nullsDifferent {
			return nil, nil
		}
	}
	if m.typ == TypeBinary {
		return b, nil
	}
	s, err := decodeCharset(m.cfg.encoding, b)
	if err != nil {
		return nil, err
	}
	if m.typ == TypeString {
		return s, nil
	}
	s = strings.TrimSpace(m.cfg.trim.Apply(s))
	if s == "" {
		return nil, nil
	}
	return m.ops.parse(m.formatSource(), s)
}

// binaryStringShortcut reports whether encoded strings can be compared byte by byte.
func (m *Meta) binaryStringShortcut() bool {
	return m.typ == TypeString &&
		m.cfg.storage == StorageBinaryString &&
		m.cfg.trim == TrimNone &&
		!m.cfg.collation.Enabled &&
		!m.cfg.caseInsensitive &&
		isUTF8(m.cfg.encoding)
}
