// Package convert implements the "conversion layer" collaborator from the X
// resource database spec: mapping a looked-up string value (or its absence)
// to a typed int or bool, the way legacy Xlib resource conversion does.
package convert

import (
	"strconv"
	"strings"
)

// Int trims surrounding whitespace from value and parses the rest as a
// signed base-10 integer using full-string consumption. If value is absent (ok == false) or fails to parse, sentinel
// is returned instead; the caller chooses the sentinel (e.g. math.MinInt64)
// since the core never picks one for them.
func Int(value string, ok bool, sentinel int64) int64 {
	if !ok {
		return sentinel
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return sentinel
	}
	return n
}

// Bool converts a looked-up value to a boolean. It first tries integer
// conversion (non-zero is true), then falls back to case-insensitive
// matching of "true"/"on"/"yes" (true) and "false"/"off"/"no" (false). An
// absent value, or any value matching neither form, converts to false.
func Bool(value string, ok bool) bool {
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(value)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n != 0
	}

	switch strings.ToLower(trimmed) {
	case "true", "on", "yes":
		return true
	case "false", "off", "no":
		return false
	default:
		return false
	}
}
