package schema

import (
	"strconv"
	"strings"
)

// SemanticType is the logical kind of a column value, independent of how it is stored.
type SemanticType int

// Type codes. The numeric values are persisted and must not change.
const (
	TypeNone            SemanticType = 0
	TypeNumber          SemanticType = 1
	TypeString          SemanticType = 2
	TypeDate            SemanticType = 3
	TypeBoolean         SemanticType = 4
	TypeInteger         SemanticType = 5
	TypeBigNumber       SemanticType = 6
	typeSerializable    SemanticType = 7 // reserved, never created
	TypeBinary          SemanticType = 8
	TypeTimestamp       SemanticType = 9
	TypeInternetAddress SemanticType = 10

	typeCount = 11
)

// registryOrder is the order in which types are listed to callers.
var registryOrder = []SemanticType{
	TypeNone,
	TypeNumber,
	TypeString,
	TypeDate,
	TypeBoolean,
	TypeInteger,
	TypeBigNumber,
	TypeBinary,
	TypeTimestamp,
	TypeInternetAddress,
}

var typeNames = [typeCount]string{
	TypeNone:            "None",
	TypeNumber:          "Number",
	TypeString:          "String",
	TypeDate:            "Date",
	TypeBoolean:         "Boolean",
	TypeInteger:         "Integer",
	TypeBigNumber:       "BigNumber",
	typeSerializable:    "Serializable",
	TypeBinary:          "Binary",
	TypeTimestamp:       "Timestamp",
	TypeInternetAddress: "Internet Address",
}

// String returns the persisted type name.
func (t SemanticType) String() string {
	if t < 0 || int(t) >= typeCount {
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Valid reports whether t can be instantiated.
func (t SemanticType) Valid() bool {
	return t >= 0 && int(t) < typeCount && t != typeSerializable
}

// ParseSemanticType resolves a type name (case-insensitive, spaces optional) or a numeric code.
func ParseSemanticType(s string) (SemanticType, error) {
	key := normalizeTypeName(s)
	if key == "" {
		return TypeNone, &UnknownTypeError{Name: s}
	}
	if code, err := strconv.Atoi(key); err == nil {
		t := SemanticType(code)
		if !t.Valid() {
			return TypeNone, &UnknownTypeError{Code: code, Name: s}
		}
		return t, nil
	}
	for _, t := range registryOrder {
		if normalizeTypeName(typeNames[t]) == key {
			return t, nil
		}
	}
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return TypeNone, &UnknownTypeError{Code: -1, Name: s}
}

// typeAliases accepts the names commonly used in row layouts and SQL.
var typeAliases = map[string]SemanticType{
	"text":     TypeString,
	"varchar":  TypeString,
	"int":      TypeInteger,
	"bigint":   TypeInteger,
	"float":    TypeNumber,
	"double":   TypeNumber,
	"decimal":  TypeBigNumber,
	"bool":     TypeBoolean,
	"blob":     TypeBinary,
	"datetime": TypeTimestamp,
	"inet":     TypeInternetAddress,
}

func normalizeTypeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "")
}

// IsNumericType reports whether values of t are numbers.
func IsNumericType(t SemanticType) bool {
	switch t {
	case TypeInteger, TypeNumber, TypeBigNumber:
		return true
	default:
		return false
	}
}

// IsTemporalType reports whether values of t are points in time.
func IsTemporalType(t SemanticType) bool {
	return t == TypeDate || t == TypeTimestamp
}

// StorageType is the in-memory representation of a value.
type StorageType int

const (
	// StorageNormal holds the native Go value.
	StorageNormal StorageType = 0
	// StorageBinaryString holds the value as encoded text bytes, decoded on demand.
	StorageBinaryString StorageType = 1
	// StorageCompressed holds zstd-compressed encoded text bytes.
	StorageCompressed StorageType = 2
)

var storageCodes = []string{"normal", "binary-string", "compressed"}

func (s StorageType) String() string {
	if s < 0 || int(s) >= len(storageCodes) {
		return storageCodes[0]
	}
	return storageCodes[s]
}

// ParseStorageType resolves a storage code; an empty string means normal storage.
func ParseStorageType(s string) (StorageType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StorageNormal, nil
	}
	for i, code := range storageCodes {
		if code == s {
			return StorageType(i), nil
		}
	}
	return StorageNormal, &ValidationError{Field: "storage", Message: "unknown storage type", Value: s}
}

// SortDirection selects the comparison order.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

func (d SortDirection) String() string {
	if d == SortDescending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection accepts asc/desc and their long forms.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	default:
		return SortAscending, &ValidationError{Field: "sort", Message: "unknown sort direction", Value: s}
	}
}

// Collation strengths.
const (
	StrengthPrimary   = 0 // base letters only
	StrengthSecondary = 1 // plus accents
	StrengthTertiary  = 2 // plus case
	StrengthIdentical = 3 // plus code points
)

// Collation configures locale-aware string comparison.
type Collation struct {
	Enabled  bool
	Locale   string
	Strength int
}
