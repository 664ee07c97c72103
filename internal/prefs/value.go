package prefs

import (
	"bytes"
	"math"
	"time"
)

// realEpsilon absorbs the rounding noise a float picks up on its way
// through the defaults export format. Comparison is by absolute
// difference, not bit equality.
const realEpsilon = 1e-9

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindInteger
	KindReal
	KindText
	KindBinary
	KindArray
	KindDictionary
	KindTimestamp
	KindReference
	KindUnsupported
)

// String returns the kind name as shown in UI labels.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "bool"
	case KindInteger:
		return "int"
	case KindReal:
		return "float"
	case KindText:
		return "string"
	case KindBinary:
		return "data"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dict"
	case KindTimestamp:
		return "date"
	case KindReference:
		return "uid"
	default:
		return "unsupported"
	}
}

// Value is one setting's data as stored in a defaults domain. The set of
// variants is closed: anything the plist decoder hands us outside this set
// is represented as Unsupported rather than rejected.
type Value interface {
	Kind() Kind
	isValue()
}

// Boolean is a true/false setting.
type Boolean bool

// Integer is a signed 64-bit integer setting.
type Integer int64

// Real is a double-precision float setting.
type Real float64

// Text is a UTF-8 string setting.
type Text string

// Binary is a raw byte blob setting.
type Binary []byte

// Array is an ordered sequence of values.
type Array []Value

// Dictionary maps unique string keys to values.
type Dictionary map[string]Value

// Timestamp is a date/time setting.
type Timestamp time.Time

// Reference is an opaque identifier into a keyed archive (a plist UID).
type Reference uint64

// Unsupported marks a decoded value outside the closed variant set. It
// carries a short description of what was found, so two markers for the
// same underlying oddity still compare equal across snapshots.
type Unsupported string

func (Boolean) Kind() Kind     { return KindBoolean }
func (Integer) Kind() Kind     { return KindInteger }
func (Real) Kind() Kind        { return KindReal }
func (Text) Kind() Kind        { return KindText }
func (Binary) Kind() Kind      { return KindBinary }
func (Array) Kind() Kind       { return KindArray }
func (Dictionary) Kind() Kind  { return KindDictionary }
func (Timestamp) Kind() Kind   { return KindTimestamp }
func (Reference) Kind() Kind   { return KindReference }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (Boolean) isValue()     {}
func (Integer) isValue()     {}
func (Real) isValue()        {}
func (Text) isValue()        {}
func (Binary) isValue()      {}
func (Array) isValue()       {}
func (Dictionary) isValue()  {}
func (Timestamp) isValue()   {}
func (Reference) isValue()   {}
func (Unsupported) isValue() {}

// Equal reports whether two values are deeply equal. Values of different
// variants are never equal. Arrays compare element-wise in order,
// dictionaries by key set regardless of order, reals under a fixed epsilon.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Real:
		bv, ok := b.(Real)
		return ok && math.Abs(float64(av)-float64(bv)) < realEpsilon
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Binary:
		bv, ok := b.(Binary)
		return ok && bytes.Equal(av, bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		bv, ok := b.(Dictionary)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	case Timestamp:
		bv, ok := b.(Timestamp)
		return ok && time.Time(av).Equal(time.Time(bv))
	case Reference:
		bv, ok := b.(Reference)
		return ok && av == bv
	case Unsupported:
		bv, ok := b.(Unsupported)
		return ok && av == bv
	default:
		return false
	}
}
