// Package config loads the wiki tooling configuration: hardcoded defaults,
// then the user config, then the project .wiki.yaml, then WIKI_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/search"
)

// ProjectFileName is the project configuration file.
const ProjectFileName = ".wiki.yaml"

// Config represents the complete wiki configuration.
type Config struct {
	Version int               `yaml:"version" json:"version"`
	Paths   PathsConfig       `yaml:"paths" json:"paths"`
	Search  SearchConfig      `yaml:"search" json:"search"`
	Watch   WatchConfig       `yaml:"watch" json:"watch"`
	Host    client.HostConfig `yaml:"host" json:"host"`
	Logging LoggingConfig     `yaml:"logging" json:"logging"`
}

// PathsConfig locates the content and the build output.
type PathsConfig struct {
	// Data is the directory holding the JSON collections.
	Data string `yaml:"data" json:"data"`

	// Public is the directory the search artifacts are written to.
	Public string `yaml:"public" json:"public"`
}

// SearchConfig configures query sessions.
type SearchConfig struct {
	Limit     int      `yaml:"limit" json:"limit"`
	Debounce  string   `yaml:"debounce" json:"debounce"`
	CacheSize int      `yaml:"cache_size" json:"cache_size"`
	Fields    []string `yaml:"fields" json:"fields"`

	// BaseURL, when set, makes `wiki search` fetch artifacts over HTTP.
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// WatchConfig configures rebuild-on-change.
type WatchConfig struct {
	Debounce string `yaml:"debounce" json:"debounce"`
}

// LoggingConfig configures the debug log file.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Data:   "data",
			Public: "public",
		},
		Search: SearchConfig{
			Limit:     search.DefaultLimit,
			Debounce:  client.DefaultDebounce.String(),
			CacheSize: client.DefaultCacheSize,
			Fields:    fieldNames(search.DefaultFields),
		},
		Watch: WatchConfig{
			Debounce: "300ms",
		},
		Host: client.HostConfig{
			QuickLinks: []client.QuickLink{
				{Label: "Biography", Href: "/bio", Badge: "Bio"},
				{Label: "Awards", Href: "/awards", Badge: "Award"},
				{Label: "Repositories", Href: "/repos", Badge: "Repo"},
				{Label: "Media", Href: "/media", Badge: "Video"},
			},
			Suggestions: []string{},
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

func fieldNames(fields []search.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

// GetUserConfigPath returns the path to the user configuration file:
// $XDG_CONFIG_HOME/wiki/config.yaml or ~/.config/wiki/config.yaml.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wiki", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "wiki", "config.yaml")
	}
	return filepath.Join(home, ".config", "wiki", "config.yaml")
}

// loadUserConfig returns nil, nil when no user config exists.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var parsed Config
	if err := readYAML(configPath, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Load loads configuration for the project in dir.
// Precedence, lowest first:
//  1. Hardcoded defaults
//  2. User config (~/.config/wiki/config.yaml)
//  3. Project config (.wiki.yaml or .wiki.yml in dir)
//  4. Environment variables (WIKI_*)
//
// Relative paths are resolved against dir.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Paths.Data = resolve(dir, cfg.Paths.Data)
	cfg.Paths.Public = resolve(dir, cfg.Paths.Public)
	return cfg, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// ProjectConfigPath returns the existing project config file in dir, or "".
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectFileName, ".wiki.yml"} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) loadFromFile(dir string) error {
	path := ProjectConfigPath(dir)
	if path == "" {
		return nil
	}
	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

func readYAML(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.Data != "" {
		c.Paths.Data = other.Paths.Data
	}
	if other.Paths.Public != "" {
		c.Paths.Public = other.Paths.Public
	}

	if other.Search.Limit != 0 {
		c.Search.Limit = other.Search.Limit
	}
	if other.Search.Debounce != "" {
		c.Search.Debounce = other.Search.Debounce
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}
	if len(other.Search.Fields) > 0 {
		c.Search.Fields = other.Search.Fields
	}
	if other.Search.BaseURL != "" {
		c.Search.BaseURL = other.Search.BaseURL
	}

	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if other.Host.QuickLinks != nil {
		c.Host.QuickLinks = other.Host.QuickLinks
	}
	if other.Host.Suggestions != nil {
		c.Host.Suggestions = other.Host.Suggestions
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
}

// applyEnvOverrides applies WIKI_* environment variable overrides.
// Unparsable numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WIKI_DATA_DIR"); v != "" {
		c.Paths.Data = v
	}
	if v := os.Getenv("WIKI_PUBLIC_DIR"); v != "" {
		c.Paths.Public = v
	}
	if v := os.Getenv("WIKI_SEARCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.Limit = n
		}
	}
	if v := os.Getenv("WIKI_SEARCH_DEBOUNCE"); v != "" {
		c.Search.Debounce = v
	}
	if v := os.Getenv("WIKI_BASE_URL"); v != "" {
		c.Search.BaseURL = v
	}
	if v := os.Getenv("WIKI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.Paths.Data == "" {
		return fmt.Errorf("paths.data must not be empty")
	}
	if c.Paths.Public == "" {
		return fmt.Errorf("paths.public must not be empty")
	}

	if c.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}
	if _, err := parsePositiveDuration(c.Search.Debounce); err != nil {
		return fmt.Errorf("search.debounce: %w", err)
	}
	if _, err := c.SearchFields(); err != nil {
		return err
	}

	if _, err := parsePositiveDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}

	for i, link := range c.Host.QuickLinks {
		if link.Label == "" || link.Href == "" {
			return fmt.Errorf("host.quicklinks[%d] needs a label and an href", i)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return fmt.Errorf("logging.max_size_mb and logging.max_files must be non-negative")
	}
	return nil
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

// SearchDebounce returns search.debounce as a duration.
func (c *Config) SearchDebounce() time.Duration {
	d, err := parsePositiveDuration(c.Search.Debounce)
	if err != nil {
		return client.DefaultDebounce
	}
	return d
}

// WatchDebounce returns watch.debounce as a duration.
func (c *Config) WatchDebounce() time.Duration {
	d, err := parsePositiveDuration(c.Watch.Debounce)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}

// SearchFields returns search.fields as index fields.
func (c *Config) SearchFields() ([]search.Field, error) {
	out := make([]search.Field, 0, len(c.Search.Fields))
	for _, name := range c.Search.Fields {
		f := search.Field(strings.ToLower(name))
		if !f.Valid() {
			return nil, fmt.Errorf("search.fields: unknown field %q (want title, description or keywords)", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
