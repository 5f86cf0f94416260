package extension

import "time"

// Options is a bag of settings shared by all extensions.
// Keys are namespaced by extension, e.g. "scrobbler.enabled".
type Options map[string]any

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Bool returns the boolean at key, or def when missing or of another type.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string at key, or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer at key, or def. int64 and float64 values
// (as produced by config decoders) are converted.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Duration returns the duration at key, or def. Strings are parsed with
// time.ParseDuration.
func (o Options) Duration(key string, def time.Duration) time.Duration {
	switch v := o[key].(type) {
	case time.Duration:
		return v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		return d
	default:
		return def
	}
}
