package tiles

import "strconv"

// Properties is one snapshot of a tile's persisted property values.
// Values are strings or numbers as stored by the host; missing keys
// read as zero values, never errors.
type Properties map[string]any

// String returns the named property as a string. Absent or
// non-string values read as the empty string.
func (p Properties) String(name string) string {
	if s, ok := p[name].(string); ok {
		return s
	}
	return ""
}

// Number returns the named property as a number. JSON decoding stores
// numbers as float64; stored numeric strings are accepted too since
// older plugin versions persisted numbers that way.
func (p Properties) Number(name string) (float64, bool) {
	switch v := p[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
