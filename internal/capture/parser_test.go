package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefdiff/internal/prefs"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>enabled</key>
	<true/>
	<key>count</key>
	<integer>42</integer>
	<key>offset</key>
	<integer>-7</integer>
	<key>scale</key>
	<real>1.5</real>
	<key>name</key>
	<string>hello</string>
	<key>blob</key>
	<data>3q2+7w==</data>
	<key>when</key>
	<date>2024-06-01T12:30:00Z</date>
	<key>list</key>
	<array>
		<string>a</string>
		<integer>1</integer>
	</array>
	<key>nested</key>
	<dict>
		<key>k</key>
		<false/>
	</dict>
</dict>
</plist>
`

func TestParseDomain(t *testing.T) {
	settings, err := parseDomain([]byte(sampleExport))
	require.NoError(t, err)
	require.Len(t, settings, 9)

	want := map[string]prefs.Value{
		"enabled": prefs.Boolean(true),
		"count":   prefs.Integer(42),
		"offset":  prefs.Integer(-7),
		"scale":   prefs.Real(1.5),
		"name":    prefs.Text("hello"),
		"blob":    prefs.Binary{0xDE, 0xAD, 0xBE, 0xEF},
		"when":    prefs.Timestamp(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)),
		"list":    prefs.Array{prefs.Text("a"), prefs.Integer(1)},
		"nested":  prefs.Dictionary{"k": prefs.Boolean(false)},
	}

	for key, expected := range want {
		actual, ok := settings[key]
		require.True(t, ok, "missing key %q", key)
		assert.True(t, prefs.Equal(expected, actual), "key %q: want %#v, got %#v", key, expected, actual)
	}
}

func TestParseDomainNonDictTopLevel(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><array><string>x</string></array></plist>`

	settings, err := parseDomain([]byte(data))
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestParseDomainInvalidData(t *testing.T) {
	_, err := parseDomain([]byte("not a plist at all"))
	assert.Error(t, err)
}

func TestConvertValueUnknownType(t *testing.T) {
	v := convertValue(struct{ odd int }{odd: 1})
	require.Equal(t, prefs.KindUnsupported, v.Kind())

	// Two conversions of the same oddity compare equal, so an unchanged
	// unknown value does not show up as modified.
	assert.True(t, prefs.Equal(v, convertValue(struct{ odd int }{odd: 2})))
}

func TestConvertValueRecursesIntoContainers(t *testing.T) {
	v := convertValue([]interface{}{
		map[string]interface{}{"inner": uint64(3)},
		"text",
	})

	want := prefs.Array{
		prefs.Dictionary{"inner": prefs.Integer(3)},
		prefs.Text("text"),
	}
	assert.True(t, prefs.Equal(want, v))
}
