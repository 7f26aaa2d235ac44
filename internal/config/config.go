package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides config discovery.
const EnvPath = "DISKS_CONFIG"

// DefaultMdstatPath is the kernel's software RAID status file.
const DefaultMdstatPath = "/proc/mdstat"

// DefaultCommandTimeout bounds every external command invocation.
const DefaultCommandTimeout = 30 * time.Second

type Config struct {
	DiskSpace      DiskSpace     `yaml:"diskspace"`
	HDDTemp        HDDTemp       `yaml:"hddtemp"`
	Mdstat         Mdstat        `yaml:"mdstat"`
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`
}

type DiskSpace struct {
	Enabled bool   `yaml:"enabled"`
	Disks   []Disk `yaml:"disks"`
}

// Disk is a mount point to report usage for. Type and Raid are free-form
// labels printed next to the usage bar.
type Disk struct {
	Mountpoint string `yaml:"mountpoint"`
	Type       string `yaml:"type"`
	Raid       string `yaml:"raid"`
}

type HDDTemp struct {
	Enabled bool     `yaml:"enabled"`
	Disks   []string `yaml:"disks"`
}

type Mdstat struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// ConfigError reports a missing or malformed configuration file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrNotFound is wrapped by ConfigError when no config file exists.
var ErrNotFound = errors.New("no config file found")

// Candidates returns the default config locations in lookup order.
func Candidates() []string {
	candidates := []string{
		"/etc/disks/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/disks/config.yaml"),
		"config.yaml",
		"config.json",
	}
	// Older installs keep config.json next to the executable
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "config.json"))
	}
	return candidates
}

// Load reads the config at path. An empty path falls back to $DISKS_CONFIG
// and then to the first existing entry of Candidates.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}
	if path == "" {
		return nil, &ConfigError{Err: ErrNotFound}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes a YAML (or JSON) document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.CommandTimeout == 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	if cfg.Mdstat.Path == "" {
		cfg.Mdstat.Path = DefaultMdstatPath
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// No mount points configured - discover mounted filesystems
	if cfg.DiskSpace.Enabled && len(cfg.DiskSpace.Disks) == 0 {
		disks, err := DiscoverMounts()
		if err != nil {
			return nil, fmt.Errorf("mount discovery failed: %w", err)
		}
		cfg.DiskSpace.Disks = disks
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	for i, d := range c.DiskSpace.Disks {
		if d.Mountpoint == "" {
			return fmt.Errorf("diskspace.disks[%d]: mountpoint is required", i)
		}
	}
	if c.HDDTemp.Enabled && len(c.HDDTemp.Disks) == 0 {
		return errors.New("hddtemp is enabled but no disks are listed")
	}
	for i, d := range c.HDDTemp.Disks {
		if d == "" {
			return fmt.Errorf("hddtemp.disks[%d]: device path is empty", i)
		}
	}
	return nil
}
