package schema

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// settings is the persisted configuration of a descriptor.
type settings struct {
	name     string
	origin   string
	comments string

	length    int
	precision int

	storage     StorageType
	storageMeta *Meta
	encoding    string

	trim            TrimType
	collation       Collation
	caseInsensitive bool
	sortDir         SortDirection
	nullsDifferent  bool

	mask           string
	decimalSymbol  string
	groupingSymbol string
	currencySymbol string
	locale         string
	timeZone       *time.Location
	dateLenient    bool

	origSQLType   SQLType
	origTypeName  string
	origPrecision int
	origScale     int
}

// caches are built lazily on first use and dropped by every setter.
type caches struct {
	number    atomic.Pointer[numberFormat]
	date      atomic.Pointer[dateFormat]
	collators atomic.Pointer[sync.Pool]
}

// Meta is the type descriptor of one column.
// Configure it before sharing; after that every method is safe for concurrent use.
type Meta struct {
	typ   SemanticType
	ops   variant
	cfg   settings
	cache caches
}

var _ Descriptor = (*Meta)(nil)

func newMeta(t SemanticType, name string, length, precision int) *Meta {
	return &Meta{
		typ: t,
		ops: variants[t],
		cfg: settings{
			name:          name,
			length:        length,
			precision:     precision,
			origPrecision: -1,
			origScale:     -1,
		},
	}
}

func (m *Meta) reset() {
	m.cache.number.Store(nil)
	m.cache.date.Store(nil)
	m.cache.collators.Store(nil)
}

// Clone returns an independent deep copy that shares no caches with m.
func (m *Meta) Clone() *Meta {
	c := &Meta{typ: m.typ, ops: m.ops, cfg: m.cfg}
	if m.cfg.storageMeta != nil {
		c.cfg.storageMeta = m.cfg.storageMeta.Clone()
	}
	return c
}

// String describes the descriptor, e.g. "amount Number(10, 2)".
func (m *Meta) String() string {
	s := m.typ.String()
	switch {
	case m.cfg.length >= 0 && m.cfg.precision > 0:
		s += "(" + strconv.Itoa(m.cfg.length) + ", " + strconv.Itoa(m.cfg.precision) + ")"
	case m.cfg.length >= 0:
		s += "(" + strconv.Itoa(m.cfg.length) + ")"
	}
	if m.cfg.storage != StorageNormal {
		s += "<" + m.cfg.storage.String() + ">"
	}
	if m.cfg.name != "" {
		s = m.cfg.name + " " + s
	}
	return s
}

func (m *Meta) Type() SemanticType           { return m.typ }
func (m *Meta) Name() string                 { return m.cfg.name }
func (m *Meta) Origin() string               { return m.cfg.origin }
func (m *Meta) Comments() string             { return m.cfg.comments }
func (m *Meta) Length() int                  { return m.cfg.length }
func (m *Meta) Precision() int               { return m.cfg.precision }
func (m *Meta) StorageType() StorageType     { return m.cfg.storage }
func (m *Meta) StorageMetadata() *Meta       { return m.cfg.storageMeta }
func (m *Meta) Encoding() string             { return m.cfg.encoding }
func (m *Meta) TrimType() TrimType           { return m.cfg.trim }
func (m *Meta) Collation() Collation         { return m.cfg.collation }
func (m *Meta) CaseInsensitive() bool        { return m.cfg.caseInsensitive }
func (m *Meta) SortDirection() SortDirection { return m.cfg.sortDir }
func (m *Meta) ConversionMask() string       { return m.cfg.mask }
func (m *Meta) DecimalSymbol() string        { return m.cfg.decimalSymbol }
func (m *Meta) GroupingSymbol() string       { return m.cfg.groupingSymbol }
func (m *Meta) CurrencySymbol() string       { return m.cfg.currencySymbol }
func (m *Meta) Locale() string               { return m.cfg.locale }
func (m *Meta) DateLenient() bool            { return m.cfg.dateLenient }
func (m *Meta) OriginalSQLType() SQLType     { return m.cfg.origSQLType }
func (m *Meta) OriginalTypeName() string     { return m.cfg.origTypeName }
func (m *Meta) OriginalPrecision() int       { return m.cfg.origPrecision }
func (m *Meta) OriginalScale() int           { return m.cfg.origScale }

// NullsAndEmptyAreDifferent reports whether an empty string is a value rather than null.
func (m *Meta) NullsAndEmptyAreDifferent() bool { return m.cfg.nullsDifferent }

// TimeZone returns the zone used to parse and format dates; UTC when unset.
func (m *Meta) TimeZone() *time.Location {
	if m.cfg.timeZone == nil {
		return time.UTC
	}
	return m.cfg.timeZone
}

func (m *Meta) IsNumeric() bool { return IsNumericType(m.typ) }
func (m *Meta) IsString() bool  { return m.typ == TypeString }
func (m *Meta) IsDate() bool    { return IsTemporalType(m.typ) }
func (m *Meta) IsBoolean() bool { return m.typ == TypeBoolean }
func (m *Meta) IsBinary() bool  { return m.typ == TypeBinary }

func (m *Meta) SetName(name string)         { m.cfg.name = name }
func (m *Meta) SetOrigin(origin string)     { m.cfg.origin = origin }
func (m *Meta) SetComments(comments string) { m.cfg.comments = comments }

func (m *Meta) SetLength(length int) {
	m.cfg.length = length
	m.reset()
}

func (m *Meta) SetPrecision(precision int) {
	m.cfg.precision = precision
	m.reset()
}

// SetLengthPrecision sets both sizes; -1 leaves a size unconstrained.
func (m *Meta) SetLengthPrecision(length, precision int) {
	m.cfg.length, m.cfg.precision = length, precision
	m.reset()
}

func (m *Meta) SetStorageType(s StorageType) { m.cfg.storage = s }

// SetStorageMetadata sets the descriptor that formats encoded bytes.
func (m *Meta) SetStorageMetadata(sm *Meta) { m.cfg.storageMeta = sm }

// SetEncoding sets the charset of encoded bytes; empty means UTF-8.
func (m *Meta) SetEncoding(enc string) { m.cfg.encoding = enc }

func (m *Meta) SetTrimType(t TrimType) { m.cfg.trim = t }

func (m *Meta) SetCollation(c Collation) {
	m.cfg.collation = c
	m.reset()
}

func (m *Meta) SetCaseInsensitive(ci bool)          { m.cfg.caseInsensitive = ci }
func (m *Meta) SetSortDirection(d SortDirection)    { m.cfg.sortDir = d }
func (m *Meta) SetNullsAndEmptyAreDifferent(b bool) { m.cfg.nullsDifferent = b }

func (m *Meta) SetConversionMask(mask string) {
	m.cfg.mask = mask
	m.reset()
}

func (m *Meta) SetDecimalSymbol(s string) {
	m.cfg.decimalSymbol = s
	m.reset()
}

func (m *Meta) SetGroupingSymbol(s string) {
	m.cfg.groupingSymbol = s
	m.reset()
}

func (m *Meta) SetCurrencySymbol(s string) {
	m.cfg.currencySymbol = s
	m.reset()
}

func (m *Meta) SetLocale(locale string) {
	m.cfg.locale = locale
	m.reset()
}

func (m *Meta) SetTimeZone(loc *time.Location) {
	m.cfg.timeZone = loc
	m.reset()
}

func (m *Meta) SetDateLenient(lenient bool) {
	m.cfg.dateLenient = lenient
	m.reset()
}

// SetOriginalColumn records the SQL column the descriptor was derived from.
func (m *Meta) SetOriginalColumn(col ColumnMeta) {
	m.cfg.origSQLType = col.SQLType
	m.cfg.origTypeName = col.TypeName
	m.cfg.origPrecision = col.Precision
	m.cfg.origScale = col.Scale
}

// formatSource returns the descriptor whose mask formats encoded bytes.
func (m *Meta) formatSource() *Meta {
	if m.cfg.storageMeta != nil {
		return m.cfg.storageMeta
	}
	return m
}
