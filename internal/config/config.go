package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Catalog    string          `toml:"catalog"`     // TOML catalog file, empty = built-in sample
	StartRoute string          `toml:"start_route"` // e.g. ?page=/VIDEOS
	Display    string          `toml:"display"`     // desktop, web, tablet or phone
	UISettings UISettings      `toml:"ui"`
	Related    RelatedSettings `toml:"related"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MenuExpandWidth int    `toml:"menu_expand_width"`
	PageSize        int    `toml:"page_size"`
	ShowFacetCounts bool   `toml:"show_facet_counts"`
	MarkdownStyle   string `toml:"markdown_style"`
	ReusePages      bool   `toml:"reuse_pages"`
}

// RelatedSettings configures loading of related content
type RelatedSettings struct {
	Enabled      bool     `toml:"enabled"`
	Timeout      Duration `toml:"timeout"`
	CacheSize    int      `toml:"cache_size"`
	CacheTTL     Duration `toml:"cache_ttl"`
	HostInterval Duration `toml:"host_interval"`
	MaxPosts     int      `toml:"max_posts"`
}

// Duration is a time.Duration written as a string ("10s") in TOML
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DisplayClass returns the configured display, desktop if unset
func (c *Config) DisplayClass() domain.Display {
	d, err := domain.ParseDisplay(c.Display)
	if err != nil {
		return domain.DisplayDesktop
	}
	return d
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	var errs []error
	if _, err := domain.ParseDisplay(c.Display); err != nil {
		errs = append(errs, err)
	}
	if c.UISettings.PageSize < 0 {
		errs = append(errs, fmt.Errorf("ui.page_size must not be negative, got %d", c.UISettings.PageSize))
	}
	if c.Related.Timeout < 0 {
		errs = append(errs, fmt.Errorf("related.timeout must not be negative, got %s", c.Related.Timeout.Std()))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/contentbrowser/config.toml or the
// closest equivalent of the platform
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "contentbrowser", "config.toml")
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects the default location.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: ""})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.UISettings.PageSize == 0 {
		cfg.UISettings.PageSize = DefaultConfig().UISettings.PageSize
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) publish(event eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		StartRoute: "?page=/HOME",
		Display:    "desktop",
		UISettings: UISettings{
			MenuExpandWidth: 100,
			PageSize:        20,
			ShowFacetCounts: true,
			MarkdownStyle:   "dark",
			ReusePages:      true,
		},
		Related: RelatedSettings{
			Enabled:      true,
			Timeout:      Duration(10 * time.Second),
			CacheSize:    64,
			CacheTTL:     Duration(15 * time.Minute),
			HostInterval: Duration(500 * time.Millisecond),
			MaxPosts:     50,
		},
	}
}
