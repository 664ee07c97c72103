package prefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"equal booleans", Boolean(true), Boolean(true), true},
		{"unequal booleans", Boolean(true), Boolean(false), false},
		{"equal integers", Integer(42), Integer(42), true},
		{"unequal integers", Integer(42), Integer(43), false},
		{"equal reals", Real(3.14), Real(3.14), true},
		{"reals within epsilon", Real(1.0), Real(1.0 + 1e-12), true},
		{"reals outside epsilon", Real(1.0), Real(1.001), false},
		{"equal text", Text("hello"), Text("hello"), true},
		{"unequal text", Text("hello"), Text("world"), false},
		{"equal binary", Binary{0x01, 0x02}, Binary{0x01, 0x02}, true},
		{"unequal binary", Binary{0x01}, Binary{0x02}, false},
		{"equal timestamps", Timestamp(ts), Timestamp(ts), true},
		{"timestamps different zones same instant", Timestamp(ts), Timestamp(ts.In(time.FixedZone("JST", 9*3600))), true},
		{"unequal timestamps", Timestamp(ts), Timestamp(ts.Add(time.Second)), false},
		{"equal references", Reference(7), Reference(7), true},
		{"unequal references", Reference(7), Reference(8), false},
		{"equal unsupported markers", Unsupported("plist.Weird"), Unsupported("plist.Weird"), true},
		{"unequal unsupported markers", Unsupported("a"), Unsupported("b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqualCrossVariant(t *testing.T) {
	values := []Value{
		Boolean(true),
		Integer(1),
		Real(1),
		Text("1"),
		Binary{1},
		Array{Integer(1)},
		Dictionary{"k": Integer(1)},
		Timestamp(time.Unix(1, 0)),
		Reference(1),
		Unsupported("x"),
	}

	for i, a := range values {
		for j, b := range values {
			if i == j {
				continue
			}
			assert.False(t, Equal(a, b), "variants %T and %T must not compare equal", a, b)
		}
	}
}

func TestEqualArray(t *testing.T) {
	tests := []struct {
		name string
		a    Array
		b    Array
		want bool
	}{
		{"both empty", Array{}, Array{}, true},
		{"same elements in order", Array{Integer(1), Text("a")}, Array{Integer(1), Text("a")}, true},
		{"same elements out of order", Array{Integer(1), Text("a")}, Array{Text("a"), Integer(1)}, false},
		{"different length", Array{Integer(1)}, Array{Integer(1), Integer(2)}, false},
		{"nested arrays equal", Array{Array{Boolean(true)}}, Array{Array{Boolean(true)}}, true},
		{"nested arrays unequal", Array{Array{Boolean(true)}}, Array{Array{Boolean(false)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqualDictionary(t *testing.T) {
	tests := []struct {
		name string
		a    Dictionary
		b    Dictionary
		want bool
	}{
		{"both empty", Dictionary{}, Dictionary{}, true},
		{
			"same pairs",
			Dictionary{"x": Integer(1), "y": Text("a")},
			Dictionary{"y": Text("a"), "x": Integer(1)},
			true,
		},
		{
			"different key sets",
			Dictionary{"x": Integer(1)},
			Dictionary{"y": Integer(1)},
			false,
		},
		{
			"different value for a key",
			Dictionary{"x": Integer(1)},
			Dictionary{"x": Integer(2)},
			false,
		},
		{
			"subset is not equal",
			Dictionary{"x": Integer(1)},
			Dictionary{"x": Integer(1), "y": Integer(2)},
			false,
		},
		{
			"deeply nested equal",
			Dictionary{"d": Dictionary{"inner": Array{Real(1.5)}}},
			Dictionary{"d": Dictionary{"inner": Array{Real(1.5)}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bool", KindBoolean.String())
	assert.Equal(t, "dict", KindDictionary.String())
	assert.Equal(t, "uid", KindReference.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
}
