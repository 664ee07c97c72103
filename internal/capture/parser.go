package capture

import (
	"fmt"
	"time"

	"howett.net/plist"

	"prefdiff/internal/prefs"
)

// parseDomain decodes an exported XML plist into domain settings. A
// top-level value that is not a dictionary yields an empty settings map,
// matching how defaults treats such domains.
func parseDomain(data []byte) (prefs.DomainSettings, error) {
	var raw interface{}
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse plist: %w", err)
	}

	dict, ok := raw.(map[string]interface{})
	if !ok {
		return prefs.DomainSettings{}, nil
	}

	settings := make(prefs.DomainSettings, len(dict))
	for key, value := range dict {
		settings[key] = convertValue(value)
	}
	return settings, nil
}

// convertValue maps a decoded plist value onto the closed prefs.Value set.
// Conversion is total: anything unrecognized becomes an Unsupported marker
// carrying the Go type name, never an error.
func convertValue(v interface{}) prefs.Value {
	switch t := v.(type) {
	case bool:
		return prefs.Boolean(t)
	case int:
		return prefs.Integer(t)
	case int64:
		return prefs.Integer(t)
	case uint64:
		return prefs.Integer(int64(t))
	case float32:
		return prefs.Real(t)
	case float64:
		return prefs.Real(t)
	case string:
		return prefs.Text(t)
	case []byte:
		return prefs.Binary(t)
	case time.Time:
		return prefs.Timestamp(t)
	case plist.UID:
		return prefs.Reference(t)
	case []interface{}:
		arr := make(prefs.Array, 0, len(t))
		for _, element := range t {
			arr = append(arr, convertValue(element))
		}
		return arr
	case map[string]interface{}:
		dict := make(prefs.Dictionary, len(t))
		for key, value := range t {
			dict[key] = convertValue(value)
		}
		return dict
	default:
		return prefs.Unsupported(fmt.Sprintf("%T", v))
	}
}
