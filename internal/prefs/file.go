package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// UserPrefsFiles are the bulk preference file names looked up in the config
// directory, in priority order.
var UserPrefsFiles = []string{"prefs.json", "prefs.toml", "prefs.yaml", "prefs.yml"}

// ReadFile decodes a bulk preference document. The format follows the file
// extension. Nested tables are flattened into dotted names.
func ReadFile(path string) (map[string]Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preferences %q: %w", path, err)
	}

	doc := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse JSON preferences %q: %w", path, err)
		}
	case ".toml", ".tml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse TOML preferences %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML preferences %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported preference file format %q", path)
	}

	out := make(map[string]Value)
	if err := flatten(doc, "", out); err != nil {
		return nil, fmt.Errorf("preferences %q: %w", path, err)
	}
	return out, nil
}

// LoadFile reads path and applies every value in it. Unknown names abort
// the load before anything is written.
func (m *Map) LoadFile(path string) error {
	values, err := ReadFile(path)
	if err != nil {
		return err
	}
	return m.SetAll(values)
}

// AddUserPrefs applies the first bulk preference file found in dir. It
// returns the path that was loaded, or "" when none exists.
func (m *Map) AddUserPrefs(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	for _, name := range UserPrefsFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat preferences %q: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return path, m.LoadFile(path)
	}
	return "", nil
}

func flatten(doc map[string]any, prefix string, out map[string]Value) error {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := doc[key].(map[string]any); ok {
			if err := flatten(nested, name, out); err != nil {
				return err
			}
			continue
		}
		v, err := valueOf(doc[key])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return nil
}
