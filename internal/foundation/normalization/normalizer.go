// Package normalization maps loosely written configuration strings onto
// typed enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps case- and whitespace-insensitive keys to enum values.
type Normalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// New creates a normalizer for the enumeration called name. An empty input
// normalizes to defaultValue.
func New[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Normalizer[T]{name: name, values: normalized, defaultValue: defaultValue, keys: keys}
}

// Normalize returns the value for raw, or the default when unrecognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Parse returns the value for raw. Empty input yields the default; any other
// unrecognized input is an error naming the valid options.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.keys, ", "))
}

// ValidKeys returns the accepted keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	return append([]string(nil), n.keys...)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
