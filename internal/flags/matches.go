package flags

import (
	"fmt"
	"unicode/utf8"
)

// Matches is the outcome of a successful parse. Lookups accept either the
// long name or the single-character short name. Asking for a name that is
// not in the schema panics, since it can only be a programming error.
type Matches struct {
	schema Schema
	values map[string]*occurrence
	free   []string
	help   bool
	usage  string
}

// HelpRequested reports whether the help flag was given.
func (m *Matches) HelpRequested() bool {
	return m.help
}

// Usage returns the usage text rendered for a help request.
func (m *Matches) Usage() string {
	return m.usage
}

// Present reports whether the flag was given at least once.
func (m *Matches) Present(name string) bool {
	return m.lookup(name).count > 0
}

// Count returns how many times the flag was given.
func (m *Matches) Count(name string) int {
	return m.lookup(name).count
}

// Str returns the first value of the flag. A FlagOpt flag given without a
// value reports false.
func (m *Matches) Str(name string) (string, bool) {
	o := m.lookup(name)
	if len(o.values) == 0 {
		return "", false
	}
	return o.values[0], true
}

// Strs returns every value of the flag in command-line order.
func (m *Matches) Strs(name string) []string {
	return append([]string(nil), m.lookup(name).values...)
}

// Default returns the flag's value, def when the flag was given without one,
// and false when it was absent.
func (m *Matches) Default(name, def string) (string, bool) {
	o := m.lookup(name)
	if o.count == 0 {
		return "", false
	}
	if len(o.values) == 0 {
		return def, true
	}
	return o.values[0], true
}

// Free returns the positional arguments.
func (m *Matches) Free() []string {
	return append([]string(nil), m.free...)
}

func (m *Matches) lookup(name string) *occurrence {
	if o, ok := m.values[name]; ok {
		return o
	}
	if r, size := utf8.DecodeRuneInString(name); size > 0 && size == len(name) {
		for _, spec := range m.schema {
			if spec.Short == r {
				return m.values[spec.Long]
			}
		}
	}
	panic(fmt.Sprintf("flags: no such option %q", name))
}
