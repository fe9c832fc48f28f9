package models

import (
	"github.com/spf13/cast"
)

// Record is an untyped metadata payload as returned by the remote API.
// The upstream schema is not contractually stable, so every accessor is
// missing-key tolerant and returns a zero value instead of failing.
type Record map[string]any

// Str returns the string value for key, or "" when absent or unconvertible.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// StrOr returns the string value for key, or def when absent or empty.
func (r Record) StrOr(key, def string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return def
}

// Int returns the integer value for key, or 0 when absent or unconvertible.
func (r Record) Int(key string) int {
	v, ok := r[key]
	if !ok {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Float returns the float value for key, or 0 when absent or unconvertible.
func (r Record) Float(key string) float64 {
	v, ok := r[key]
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Map returns the nested Record under key, or an empty Record when absent.
func (r Record) Map(key string) Record {
	switch v := r[key].(type) {
	case Record:
		return v
	case map[string]any:
		return Record(v)
	default:
		return Record{}
	}
}

// Slice returns the list of nested Records under key. Entries that are not
// mappings are skipped. An absent key yields a nil slice.
func (r Record) Slice(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case Record:
			out = append(out, v)
		case map[string]any:
			out = append(out, Record(v))
		}
	}
	return out
}

// Strings returns the list of string values under key, skipping entries
// that cannot be represented as strings.
func (r Record) Strings(key string) []string {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, err := cast.ToStringE(item)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}
