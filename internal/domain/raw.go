package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RawProductRecord is one heterogeneous product row as supplied by a data source.
// Values are optional primitives (string, float64, int, bool or nil); no field is
// guaranteed to be present.
type RawProductRecord map[string]any

// Text returns the trimmed string form of a field, or "" when it is absent or nil.
func (r RawProductRecord) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// FirstText returns the first non-empty text among keys.
func (r RawProductRecord) FirstText(keys ...string) string {
	for _, k := range keys {
		if s := r.Text(k); s != "" {
			return s
		}
	}
	return ""
}

// Truthy reports whether a flag-like field is set. Spreadsheet exports carry
// booleans as text, so TRUE/T/YES/Y/1 are accepted case-insensitively.
func (r RawProductRecord) Truthy(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	switch strings.ToUpper(r.Text(key)) {
	case "TRUE", "T", "YES", "Y", "1":
		return true
	}
	return false
}
