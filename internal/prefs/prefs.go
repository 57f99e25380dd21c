package prefs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownPreference is returned when a write names a preference that was never registered.
	ErrUnknownPreference = errors.New("unknown preference")
	// ErrInvalidName is returned by Register for malformed dotted names.
	ErrInvalidName = errors.New("invalid preference name")
)

type entry struct {
	defaultValue Value
	currentValue Value
}

// Map is the preference store the resolver writes into. Only registered
// names can be written; writes never create new keys.
type Map struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMap returns an empty preference map.
func NewMap() *Map {
	return &Map{entries: make(map[string]entry)}
}

// Register declares a preference name and its default value.
func (m *Map) Register(name string, defaultValue Value) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for _, segment := range strings.Split(name, ".") {
		if !isValidSegment(segment) {
			return fmt.Errorf("%w: segment %q in %q", ErrInvalidName, segment, name)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = entry{defaultValue: defaultValue, currentValue: defaultValue}
	return nil
}

// Set replaces the current value of a registered preference.
func (m *Map) Set(name string, value Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreference, name)
	}
	e.currentValue = value
	m.entries[name] = e
	return nil
}

// SetAll applies a batch of values. Every name is checked before any value
// is written, so an unknown name leaves the map untouched.
func (m *Map) SetAll(values map[string]Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range sortedKeys(values) {
		if _, ok := m.entries[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPreference, name)
		}
	}
	for name, value := range values {
		e := m.entries[name]
		e.currentValue = value
		m.entries[name] = e
	}
	return nil
}

// Reset restores a preference to its registered default.
func (m *Map) Reset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreference, name)
	}
	e.currentValue = e.defaultValue
	m.entries[name] = e
	return nil
}

// Get returns the current value and whether the name is registered.
func (m *Map) Get(name string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	return e.currentValue, ok
}

// Bool returns the named preference as a boolean.
func (m *Map) Bool(name string) (bool, error) {
	v, ok := m.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPreference, name)
	}
	if v.Kind() != KindBool {
		return false, fmt.Errorf("preference %s is %s, not bool", name, v.Kind())
	}
	return v.AsBool(), nil
}

// Int returns the named preference as an integer.
func (m *Map) Int(name string) (int64, error) {
	v, ok := m.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPreference, name)
	}
	if v.Kind() != KindInt {
		return 0, fmt.Errorf("preference %s is %s, not int", name, v.Kind())
	}
	return v.AsInt(), nil
}

// Names lists registered preference names in sorted order.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the current values into a flat map keyed by dotted name.
func (m *Map) Snapshot() map[string]Value {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Value, len(m.entries))
	for name, e := range m.entries {
		out[name] = e.currentValue
	}
	return out
}

// Scan decodes current values into target, a pointer to a struct whose
// fields carry `pref:"dotted.name"` tags. Conversion is weakly typed, so an
// int preference can fill a float field.
func (m *Map) Scan(target any) error {
	flat := make(map[string]any)
	for name, v := range m.Snapshot() {
		flat[name] = v.Any()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "pref",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create preference decoder: %w", err)
	}
	if err := decoder.Decode(flat); err != nil {
		return fmt.Errorf("decode preferences: %w", err)
	}
	return nil
}

func sortedKeys(values map[string]Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isValidSegment(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
