package prefs

import (
	"fmt"
	"strings"
)

// ParseCommandLine applies a single "name[=value]" override. A bare name
// sets the preference to true.
func (m *Map) ParseCommandLine(pref string) error {
	name, raw, hasValue := strings.Cut(pref, "=")
	var input *string
	if hasValue {
		input = &raw
	}
	if err := m.Set(name, Coerce(input)); err != nil {
		return fmt.Errorf("error setting preference %s: %w", pref, err)
	}
	return nil
}
