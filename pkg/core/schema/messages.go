package schema

import (
	"strings"
)

// Messages is a message source for user-facing descriptions.
// Lookups fall back to the built-in English text for missing keys.
type Messages map[string]string

// DefaultMessages holds the built-in English descriptions.
var DefaultMessages = Messages{
	"trim.none":  "None",
	"trim.left":  "Left",
	"trim.right": "Right",
	"trim.both":  "Both",

	"type.None":             "None",
	"type.Number":           "Number",
	"type.String":           "String",
	"type.Date":             "Date",
	"type.Boolean":          "Boolean",
	"type.Integer":          "Integer",
	"type.BigNumber":        "BigNumber",
	"type.Binary":           "Binary",
	"type.Timestamp":        "Timestamp",
	"type.Internet Address": "Internet Address",
}

// Text returns the message for key.
func (m Messages) Text(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return DefaultMessages[key]
}

// TrimType selects which whitespace is stripped from string values.
type TrimType int

const (
	TrimNone TrimType = iota
	TrimLeft
	TrimRight
	TrimBoth
)

var trimCodes = []string{"none", "left", "right", "both"}

// TrimTypes lists all trim policies in code order.
func TrimTypes() []TrimType {
	return []TrimType{TrimNone, TrimLeft, TrimRight, TrimBoth}
}

// Code returns the persisted code. Out-of-range values report "none".
func (t TrimType) Code() string {
	if t < 0 || int(t) >= len(trimCodes) {
		return trimCodes[TrimNone]
	}
	return trimCodes[t]
}

func (t TrimType) String() string { return t.Code() }

// Description returns the English description.
func (t TrimType) Description() string { return t.Describe(DefaultMessages) }

// Describe returns the description from msgs.
func (t TrimType) Describe(msgs Messages) string {
	return msgs.Text("trim." + t.Code())
}

// TrimTypeFromCode resolves a code case-insensitively. Unknown or empty codes give TrimNone.
func TrimTypeFromCode(code string) TrimType {
	for i, c := range trimCodes {
		if strings.EqualFold(c, code) {
			return TrimType(i)
		}
	}
	return TrimNone
}

// TrimTypeFromDescription resolves a description from msgs, falling back to codes.
// Unknown or empty descriptions give TrimNone.
func TrimTypeFromDescription(desc string, msgs Messages) TrimType {
	if desc == "" {
		return TrimNone
	}
	for _, t := range TrimTypes() {
		if strings.EqualFold(t.Describe(msgs), desc) {
			return t
		}
	}
	return TrimTypeFromCode(desc)
}

// Apply strips whitespace from s according to t.
func (t TrimType) Apply(s string) string {
	switch t {
	case TrimLeft:
		return strings.TrimLeft(s, " \t\r\n\f\v")
	case TrimRight:
		return strings.TrimRight(s, " \t\r\n\f\v")
	case TrimBoth:
		return strings.Trim(s, " \t\r\n\f\v")
	default:
		return s
	}
}
