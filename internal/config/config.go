// Package config loads the vibetasks YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fentz26/vibetasks/internal/notify"
)

// EnvStorePath overrides the configured store path.
const EnvStorePath = "VIBETASKS_FILE"

// Config holds vibetasks configuration.
type Config struct {
	// StorePath is the JSON task file. "~/" is expanded.
	StorePath string `yaml:"store_path"`
	// Notifications configures the due-soon alerts.
	Notifications NotificationConfig `yaml:"notifications"`
	// Audit configures the SQLite journal of mutating commands.
	Audit AuditConfig `yaml:"audit"`
}

// NotificationConfig holds the alert policy and delivery method.
type NotificationConfig struct {
	Window   time.Duration `yaml:"window"`
	Cooldown time.Duration `yaml:"cooldown"`
	Grace    time.Duration `yaml:"grace"`
	// Command is auto, notify-send, osascript or stdout.
	Command string `yaml:"command"`
}

// AuditConfig controls the journal.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	p := notify.DefaultPolicy()
	return &Config{
		StorePath: "~/.vibe_tasks.json",
		Notifications: NotificationConfig{
			Window:   p.Window,
			Cooldown: p.Cooldown,
			Grace:    p.Grace,
			Command:  notify.KindAuto,
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    "~/.vibetasks/journal.db",
		},
	}
}

// DefaultPath returns ~/.vibetasks/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".vibetasks", "config.yaml"), nil
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromHome loads configuration from ~/.vibetasks/config.yaml.
func LoadConfigFromHome() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig saves configuration to a YAML file, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("store_path must not be empty")
	}
	n := c.Notifications
	if n.Window <= 0 {
		return fmt.Errorf("notifications.window must be positive")
	}
	if n.Cooldown < 0 {
		return fmt.Errorf("notifications.cooldown must not be negative")
	}
	if n.Grace < 0 {
		return fmt.Errorf("notifications.grace must not be negative")
	}

	validCommands := map[string]bool{
		notify.KindAuto:       true,
		notify.KindNotifySend: true,
		notify.KindOsascript:  true,
		notify.KindStdout:     true,
	}
	if !validCommands[n.Command] {
		return fmt.Errorf("invalid notifications.command %q, must be: auto, notify-send, osascript, or stdout", n.Command)
	}

	if c.Audit.Enabled && strings.TrimSpace(c.Audit.Path) == "" {
		return fmt.Errorf("audit.path must be set when audit is enabled")
	}
	return nil
}

// Policy returns the notification thresholds.
func (c *Config) Policy() notify.Policy {
	return notify.Policy{
		Window:   c.Notifications.Window,
		Cooldown: c.Notifications.Cooldown,
		Grace:    c.Notifications.Grace,
	}
}

// ResolveStorePath picks the task file: the flag value, then the
// VIBETASKS_FILE environment variable, then store_path.
func (c *Config) ResolveStorePath(flagValue string) (string, error) {
	p := flagValue
	if p == "" {
		p = os.Getenv(EnvStorePath)
	}
	if p == "" {
		p = c.StorePath
	}
	return ExpandPath(p)
}

// AuditPath returns the expanded journal path.
func (c *Config) AuditPath() (string, error) {
	return ExpandPath(c.Audit.Path)
}

// ExpandPath replaces a leading "~/" with the home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
