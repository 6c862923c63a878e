// Package config loads, validates and watches the floatdock configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

var _ port.LayoutSettingsProvider = (*Manager)(nil)

// NewManager creates a configuration manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configDir)
}

// NewManagerAt creates a configuration manager reading config.toml from configDir.
func NewManagerAt(configDir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// FLOATDOCK_LAYOUT_GAP, FLOATDOCK_DATABASE_PATH, ...
	v.SetEnvPrefix("FLOATDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "FLOATDOCK_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FLOATDOCK_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FLOATDOCK_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FLOATDOCK_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
	}, nil
}

// Load loads the configuration from file and environment variables, creating a
// default config file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", m.configDir, err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = m.ConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions", m.configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, completes and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}

	if len(config.Monitors) == 0 {
		config.Monitors = DefaultMonitors()
	}
	if config.Panels == nil {
		config.Panels = map[string]PanelConfig{}
	}
	for id, p := range config.Panels {
		p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
		config.Panels[id] = p
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// LayoutSettings implements port.LayoutSettingsProvider.
func (m *Manager) LayoutSettings() entity.LayoutSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return entity.DefaultLayoutSettings()
	}
	return m.config.Layout.ToLayoutSettings()
}

// Save validates cfg, writes it to the config file and reloads it unless the
// file watcher will.
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := WriteConfigOrdered(cfg, m.ConfigFile()); err != nil {
		return err
	}
	if !m.watching {
		return m.reload()
	}
	return nil
}

// ConfigFile returns the path of config.toml.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configName)
}

// ConfigDir returns the directory holding config.toml.
func (m *Manager) ConfigDir() string { return m.configDir }

func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, configName)
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	return WriteSchemaFile(filepath.Join(m.configDir, schemaName))
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("layout.free_placement", defaults.Layout.FreePlacement)
	m.viper.SetDefault("layout.gap", defaults.Layout.Gap)
	m.viper.SetDefault("layout.overlap_prevention", defaults.Layout.OverlapPrevention)
	m.viper.SetDefault("layout.animation_ms", defaults.Layout.AnimationMs)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("database.path", defaults.Database.Path)
}
