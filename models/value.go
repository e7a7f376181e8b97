package models

import (
	"strconv"
	"strings"
)

// Kind classifies a single cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// naTokens are read as missing, the same way spreadsheet tools treat them.
var naTokens = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
}

// Value is one cell of a Table. A Null value is the sentinel used for
// anything absent or invalid; it never carries an error.
type Value struct {
	Kind Kind
	Raw  string
	Num  float64
}

// Null returns the missing-value sentinel.
func Null() Value { return Value{Kind: KindNull} }

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// Text returns a string value without attempting numeric parsing.
func Text(s string) Value { return Value{Kind: KindText, Raw: s} }

// ParseValue classifies raw cell text as Null, Number or Text.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if _, na := naTokens[s]; na {
		return Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Kind: KindNumber, Raw: s, Num: f}
	}
	return Text(s)
}

func (v Value) IsNull() bool   { return v.Kind == KindNull }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// Float returns the numeric content and whether there was one.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// String renders the value for display; Null renders as "NaN".
func (v Value) String() string {
	if v.Kind == KindNull {
		return "NaN"
	}
	return v.Raw
}

// Key identifies the value for equality checks. Two Nulls share a key.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "\x00"
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return "s:" + v.Raw
	}
}

// ToNumber coerces the value to a number. Values that cannot be coerced
// become Null.
func (v Value) ToNumber() Value {
	switch v.Kind {
	case KindNumber:
		return v
	case KindText:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64); err == nil {
			return Value{Kind: KindNumber, Raw: v.Raw, Num: f}
		}
	}
	return Null()
}
