// Package command renders a diff change as the equivalent `defaults`
// invocation: `defaults write` for added and modified keys, `defaults
// delete` for removed ones. Generation is total: every value variant has a
// defined output, degrading to a comment line for shapes the defaults
// grammar cannot express.
package command

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"prefdiff/internal/diff"
	"prefdiff/internal/prefs"
)

// xmlDateLayout matches the textual date format of an XML plist.
const xmlDateLayout = "2006-01-02T15:04:05Z"

// escaper covers the characters the shell would otherwise interpret inside
// a double-quoted argument.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// Generate returns the defaults command equivalent to the given change.
// Modified changes serialize the new value only; the old value is carried
// for display, not for generation.
func Generate(c diff.Change) string {
	if c.Type == diff.Removed {
		return fmt.Sprintf(`defaults delete "%s" "%s"`, escape(c.Domain), escape(c.Key))
	}
	return writeCommand(c.Domain, c.Key, c.New)
}

// writeCommand builds a `defaults write` statement for one value.
func writeCommand(domain, key string, value prefs.Value) string {
	d, k := escape(domain), escape(key)

	switch v := value.(type) {
	case prefs.Boolean:
		return fmt.Sprintf(`defaults write "%s" "%s" -bool %s`, d, k, boolToken(bool(v)))
	case prefs.Integer:
		return fmt.Sprintf(`defaults write "%s" "%s" -int %d`, d, k, int64(v))
	case prefs.Real:
		return fmt.Sprintf(`defaults write "%s" "%s" -float %s`, d, k, floatToken(float64(v)))
	case prefs.Text:
		return fmt.Sprintf(`defaults write "%s" "%s" -string "%s"`, d, k, escape(string(v)))
	case prefs.Binary:
		return fmt.Sprintf(`defaults write "%s" "%s" -data %s`, d, k, hex.EncodeToString(v))
	case prefs.Array:
		return fmt.Sprintf(`defaults write "%s" "%s" -array %s`, d, k, arrayElements(v))
	case prefs.Dictionary:
		if hasNestedStructure(v) {
			return fmt.Sprintf("# Nested dictionary not supported by defaults command: %s %s", d, k)
		}
		return fmt.Sprintf(`defaults write "%s" "%s" -dict %s`, d, k, dictPairs(v))
	case prefs.Timestamp:
		return fmt.Sprintf(`defaults write "%s" "%s" -date "%s"`, d, k, time.Time(v).UTC().Format(xmlDateLayout))
	case prefs.Reference:
		return fmt.Sprintf(`defaults write "%s" "%s" -int %d # UID type stored as integer`, d, k, uint64(v))
	default:
		return fmt.Sprintf("# Unsupported type for key: %s", key)
	}
}

// arrayElements serializes array members as positional arguments. Members
// outside the four scalar kinds the grammar accepts in array position are
// dropped.
func arrayElements(arr prefs.Array) string {
	elements := make([]string, 0, len(arr))
	for _, element := range arr {
		switch v := element.(type) {
		case prefs.Text:
			elements = append(elements, fmt.Sprintf(`-string "%s"`, escape(string(v))))
		case prefs.Integer:
			elements = append(elements, fmt.Sprintf("-int %d", int64(v)))
		case prefs.Real:
			elements = append(elements, "-float "+floatToken(float64(v)))
		case prefs.Boolean:
			elements = append(elements, "-bool "+boolToken(bool(v)))
		}
	}
	return strings.Join(elements, " ")
}

// hasNestedStructure reports whether any dictionary member is itself an
// array or dictionary, which the -dict flag cannot express.
func hasNestedStructure(dict prefs.Dictionary) bool {
	for _, v := range dict {
		switch v.(type) {
		case prefs.Array, prefs.Dictionary:
			return true
		}
	}
	return false
}

// dictPairs serializes a flat dictionary as -dict arguments. Keys are
// sorted so the same value always produces the same command text.
func dictPairs(dict prefs.Dictionary) string {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		if pair, ok := dictPair(k, dict[k]); ok {
			pairs = append(pairs, pair)
		}
	}
	return strings.Join(pairs, " ")
}

// dictPair serializes one dictionary member, or reports false for kinds
// with no pair-position serialization.
func dictPair(key string, value prefs.Value) (string, bool) {
	k := escape(key)
	switch v := value.(type) {
	case prefs.Boolean:
		return fmt.Sprintf(`"%s" -bool %s`, k, boolToken(bool(v))), true
	case prefs.Integer:
		return fmt.Sprintf(`"%s" -int %d`, k, int64(v)), true
	case prefs.Real:
		return fmt.Sprintf(`"%s" -float %s`, k, floatToken(float64(v))), true
	case prefs.Text:
		return fmt.Sprintf(`"%s" -string "%s"`, k, escape(string(v))), true
	case prefs.Binary:
		return fmt.Sprintf(`"%s" -data %s`, k, hex.EncodeToString(v)), true
	default:
		return "", false
	}
}

func boolToken(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// floatToken formats a float with the shortest decimal representation that
// round-trips, without an exponent.
func floatToken(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// escape makes a string safe inside a double-quoted shell argument.
func escape(s string) string {
	return escaper.Replace(s)
}
