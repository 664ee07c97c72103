package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prefdiff/internal/diff"
	"prefdiff/internal/prefs"
)

func added(domain, key string, v prefs.Value) diff.Change {
	return diff.Change{Type: diff.Added, Domain: domain, Key: key, New: v}
}

func TestGenerateWriteScalars(t *testing.T) {
	tests := []struct {
		name   string
		change diff.Change
		want   string
	}{
		{
			"bool true",
			added("com.example", "enabled", prefs.Boolean(true)),
			`defaults write "com.example" "enabled" -bool true`,
		},
		{
			"bool false",
			added("com.example", "enabled", prefs.Boolean(false)),
			`defaults write "com.example" "enabled" -bool false`,
		},
		{
			"integer",
			added("com.example", "count", prefs.Integer(42)),
			`defaults write "com.example" "count" -int 42`,
		},
		{
			"negative integer",
			added("com.example", "offset", prefs.Integer(-7)),
			`defaults write "com.example" "offset" -int -7`,
		},
		{
			"float",
			added("com.example", "scale", prefs.Real(3.14)),
			`defaults write "com.example" "scale" -float 3.14`,
		},
		{
			"float without trailing zeros",
			added("com.example", "ratio", prefs.Real(0.5)),
			`defaults write "com.example" "ratio" -float 0.5`,
		},
		{
			"string",
			added("com.example", "name", prefs.Text("hello")),
			`defaults write "com.example" "name" -string "hello"`,
		},
		{
			"binary as lowercase hex",
			added("com.example", "blob", prefs.Binary{0xDE, 0xAD, 0xBE, 0xEF}),
			`defaults write "com.example" "blob" -data deadbeef`,
		},
		{
			"date in xml plist format",
			added("com.example", "when",
				prefs.Timestamp(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC))),
			`defaults write "com.example" "when" -date "2024-06-01T12:30:00Z"`,
		},
		{
			"uid annotated as reference",
			added("com.example", "ref", prefs.Reference(12)),
			`defaults write "com.example" "ref" -int 12 # UID type stored as integer`,
		},
		{
			"unsupported becomes comment",
			added("com.example", "weird", prefs.Unsupported("plist.cfRange")),
			`# Unsupported type for key: weird`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.change))
		})
	}
}

func TestGenerateModifiedUsesNewValue(t *testing.T) {
	c := diff.Change{
		Type:   diff.Modified,
		Domain: "com.example",
		Key:    "flag",
		Old:    prefs.Boolean(false),
		New:    prefs.Boolean(true),
	}
	assert.Equal(t, `defaults write "com.example" "flag" -bool true`, Generate(c))
}

func TestGenerateRemoved(t *testing.T) {
	c := diff.Change{
		Type:   diff.Removed,
		Domain: "com.example",
		Key:    "old_key",
		Old:    prefs.Boolean(false),
	}
	assert.Equal(t, `defaults delete "com.example" "old_key"`, Generate(c))
}

func TestGenerateArray(t *testing.T) {
	tests := []struct {
		name  string
		value prefs.Array
		want  string
	}{
		{
			"mixed scalars",
			prefs.Array{prefs.Text("a"), prefs.Integer(1), prefs.Real(2.5), prefs.Boolean(false)},
			`defaults write "com.example" "list" -array -string "a" -int 1 -float 2.5 -bool false`,
		},
		{
			"complex elements dropped silently",
			prefs.Array{prefs.Text("kept"), prefs.Dictionary{"x": prefs.Integer(1)}, prefs.Integer(2)},
			`defaults write "com.example" "list" -array -string "kept" -int 2`,
		},
		{
			"empty",
			prefs.Array{},
			`defaults write "com.example" "list" -array `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(added("com.example", "list", tt.value)))
		})
	}
}

func TestGenerateDictionary(t *testing.T) {
	t.Run("flat dict emits sorted pairs", func(t *testing.T) {
		c := added("com.example", "opts", prefs.Dictionary{
			"zeta":  prefs.Text("v"),
			"alpha": prefs.Boolean(true),
			"mid":   prefs.Integer(9),
		})
		want := `defaults write "com.example" "opts" -dict "alpha" -bool true "mid" -int 9 "zeta" -string "v"`
		assert.Equal(t, want, Generate(c))
	})

	t.Run("binary member as data pair", func(t *testing.T) {
		c := added("com.example", "opts", prefs.Dictionary{
			"blob": prefs.Binary{0x0A, 0x0B},
		})
		assert.Equal(t, `defaults write "com.example" "opts" -dict "blob" -data 0a0b`, Generate(c))
	})

	t.Run("nested dict rejected with comment", func(t *testing.T) {
		c := added("com.example", "opts", prefs.Dictionary{
			"inner": prefs.Dictionary{"k": prefs.Integer(1)},
		})
		assert.Equal(t, "# Nested dictionary not supported by defaults command: com.example opts", Generate(c))
	})

	t.Run("nested array rejected with comment", func(t *testing.T) {
		c := added("com.example", "opts", prefs.Dictionary{
			"inner": prefs.Array{},
		})
		assert.Equal(t, "# Nested dictionary not supported by defaults command: com.example opts", Generate(c))
	})
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"backslash", `a\b`, `a\\b`},
		{"double quote", `say "hello"`, `say \"hello\"`},
		{"dollar", "$HOME", `\$HOME`},
		{"backtick", "`cmd`", "\\`cmd\\`"},
		{"combined", "\\$\"`", "\\\\\\$\\\"\\`"},
		{"clean string untouched", "com.apple.dock", "com.apple.dock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escape(tt.in))
		})
	}
}

func TestGenerateEscapesValueDomainAndKey(t *testing.T) {
	c := added(`com."ex"`, "path$key", prefs.Text(`$HOME is "here"`))
	want := `defaults write "com.\"ex\"" "path\$key" -string "\$HOME is \"here\""`
	assert.Equal(t, want, Generate(c))
}

// The four scalar kinds with both top-level and array-element rules must
// serialize their value literal identically in either position.
func TestScalarLiteralsMatchInArrayPosition(t *testing.T) {
	values := []prefs.Value{
		prefs.Boolean(true),
		prefs.Integer(-3),
		prefs.Real(2.25),
		prefs.Text("plain"),
	}

	for _, v := range values {
		top := Generate(added("d", "k", v))
		arr := Generate(added("d", "k", prefs.Array{v}))

		topLit := top[len(`defaults write "d" "k" `):]
		arrLit := arr[len(`defaults write "d" "k" -array `):]
		assert.Equal(t, topLit, arrLit, "literal for %T differs between positions", v)
	}
}
