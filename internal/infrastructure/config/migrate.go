package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// KeyChangeType classifies a difference between a config file and the defaults.
type KeyChangeType int

const (
	// KeyChangeAdded is a default key missing from the file.
	KeyChangeAdded KeyChangeType = iota
	// KeyChangeUnknown is a key in the file that floatdock does not read.
	KeyChangeUnknown
)

// KeyChange is one difference found by the migrator.
type KeyChange struct {
	Type  KeyChangeType
	Key   string
	Value string
}

// userDataSections are compared as a whole, never key by key.
var userDataSections = map[string]bool{
	"panels":   true,
	"monitors": true,
}

// Migrator compares a config file with the defaults and fills in missing keys.
type Migrator struct {
	defaultViper *viper.Viper
	configFile   string
}

// NewMigrator creates a migrator for the config file at path.
func NewMigrator(path string) *Migrator {
	v := viper.New()
	v.SetConfigType("toml")
	(&Manager{viper: v}).setDefaults()

	return &Migrator{defaultViper: v, configFile: path}
}

// DetectChanges lists default keys missing from the file and keys floatdock
// does not know. A missing file has no changes: it is created with every
// default on first load.
func (m *Migrator) DetectChanges() ([]KeyChange, error) {
	userKeys, err := m.userKeys()
	if err != nil || userKeys == nil {
		return nil, err
	}

	defaults := make(map[string]bool)
	for _, k := range m.defaultViper.AllKeys() {
		defaults[k] = true
	}

	var changes []KeyChange
	for key := range defaults {
		if !keyOrRelatedExists(key, userKeys) {
			changes = append(changes, KeyChange{
				Type:  KeyChangeAdded,
				Key:   key,
				Value: formatValue(m.defaultViper.Get(key)),
			})
		}
	}
	for key, value := range userKeys {
		if userDataSections[key] || keyOrRelatedExists(key, defaults) {
			continue
		}
		changes = append(changes, KeyChange{Type: KeyChangeUnknown, Key: key, Value: formatValue(value)})
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		return changes[i].Key < changes[j].Key
	})
	return changes, nil
}

// Migrate rewrites the file with missing defaults added. User values are kept;
// unknown keys are dropped. It returns the changes it applied.
func (m *Migrator) Migrate() ([]KeyChange, error) {
	changes, err := m.DetectChanges()
	if err != nil || len(changes) == 0 {
		return nil, err
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := DefaultConfig()
	// User data sections replace the defaults instead of merging with them.
	if _, ok := raw["panels"]; ok {
		cfg.Panels = nil
	}
	if _, ok := raw["monitors"]; ok {
		cfg.Monitors = nil
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configFile); err != nil {
		return nil, err
	}
	return changes, nil
}

// userKeys returns the flattened keys of the config file, nil if it does not exist.
func (m *Migrator) userKeys() (map[string]any, error) {
	data, err := os.ReadFile(m.configFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	result := make(map[string]any)
	flattenMap(raw, "", result)
	return result, nil
}

// flattenMap flattens nested tables to dot-notation keys. User data sections
// stay whole.
func flattenMap(data map[string]any, prefix string, result map[string]any) {
	for k, v := range data {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}

		if nested, ok := v.(map[string]any); ok && !userDataSections[key] {
			flattenMap(nested, key, result)
			continue
		}
		result[key] = v
	}
}

// keyOrRelatedExists checks if a key, any parent, or any child exists in keys.
func keyOrRelatedExists[V any](key string, keys map[string]V) bool {
	if _, ok := keys[key]; ok {
		return true
	}

	prefix := key + "."
	for k := range keys {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}

	parts := strings.Split(key, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if _, ok := keys[strings.Join(parts[:i], ".")]; ok {
			return true
		}
	}
	return false
}

// formatValue returns a human-readable representation of a value.
func formatValue(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		return fmt.Sprintf("{%d entries}", rv.Len())
	default:
		return fmt.Sprintf("%v", value)
	}
}
