// Package domain models the health-tracking records stored in the compact
// document schema: weight, steps, nutrition summaries, food log entries,
// goals, and food search results.
//
// Numeric record fields arrive in two shapes depending on which app revision
// wrote them: native numbers or decimal strings. The accessors here coerce
// both; everything else in the package builds on them.
package domain

import "strconv"

// Number reads a numeric field, accepting either a native number or a
// parsable decimal string. Missing, null, or unparsable values return nil.
func Number(obj map[string]any, key string) *float64 {
	switch v := obj[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

// Str reads a string field, returning "" when missing or not a string.
func Str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Flag reads a boolean field. Only a true boolean reports true; absent,
// null, and any other type report false.
func Flag(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

// numOr dereferences a possibly-nil number with a default.
func numOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
