package ragiegpt

import (
	"sort"
	"strings"
)

const flagPrefix = "--"

// Args holds the flags passed to an operation. A flag maps either to a string
// value or to the boolean true when no value followed it.
type Args struct {
	values map[string]any
}

// ParseArgs converts the tokens following the operation name into Args.
//
// "--key=value" assigns value directly. "--key" takes the next token as its
// value unless that token is empty or itself starts with "--", in which case
// key is true. Other tokens are ignored. Later occurrences of a key replace
// earlier ones.
func ParseArgs(tokens []string) Args {
	values := make(map[string]any)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, flagPrefix) {
			continue
		}

		body := tok[len(flagPrefix):]
		if key, value, ok := strings.Cut(body, "="); ok && key != "" {
			values[key] = value
			continue
		}

		if i+1 < len(tokens) {
			next := tokens[i+1]
			if next != "" && !strings.HasPrefix(next, flagPrefix) {
				values[body] = next
				i++ // Consumed as a value.
				continue
			}
		}

		values[body] = true
	}

	return Args{values: values}
}

// String returns the string value of key. Flags that resolved to true, and
// absent flags, report ok=false.
func (a Args) String(key string) (string, bool) {
	s, ok := a.values[key].(string)
	return s, ok
}

// Bool reports whether key was given. A string value counts as true unless
// it is "false" or "0".
func (a Args) Bool(key string) bool {
	switch v := a.values[key].(type) {
	case bool:
		return v
	case string:
		return v != "false" && v != "0"
	default:
		return false
	}
}

// Has reports whether key was given in any form.
func (a Args) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Value returns the raw value of key: a string, true, or nil.
func (a Args) Value(key string) any {
	return a.values[key]
}

// Keys returns the flag names in sorted order.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of distinct flags.
func (a Args) Len() int {
	return len(a.values)
}

// requireString returns the non-empty string value of key or a
// ValidationError naming it.
func (a Args) requireString(key string) (string, error) {
	s, ok := a.String(key)
	if !ok || s == "" {
		return "", &ValidationError{Flag: key}
	}

	return s, nil
}
