package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"presencesync/internal/constants"
)

// ConfigFile is looked up in the working directory when no path is given.
const ConfigFile = "presencesync.yaml"

const (
	SinkLog  = "log"
	SinkFile = "file"
	SinkNATS = "nats"
)

var SupportedSinks = []string{SinkLog, SinkFile, SinkNATS}

// Release describes the emulator build shown on the idle presence.
type Release struct {
	Version      string `yaml:"version"`
	Canary       bool   `yaml:"canary"`
	ChannelOwner string `yaml:"channel_owner"`
	ChannelRepo  string `yaml:"channel_repo"`
}

// Valid reports whether the release carries enough information to be shown.
func (r Release) Valid() bool {
	return r.Version != "" && r.ChannelOwner != "" && r.ChannelRepo != ""
}

// Description renders e.g. "Canary v1.2.3 owner/repo", or "dev build".
func (r Release) Description() string {
	if !r.Valid() {
		return "dev build"
	}
	version := "v" + strings.TrimPrefix(r.Version, "v")
	if r.Canary {
		version = "Canary " + version
	}
	return fmt.Sprintf("%s %s/%s", version, r.ChannelOwner, r.ChannelRepo)
}

// ReportRule maps one play report value to status text. Values is matched
// against the value rendered as a string; Format is used otherwise and may
// reference {value} and {title}.
type ReportRule struct {
	Name   string            `yaml:"name"`
	Titles []string          `yaml:"titles"`
	Key    string            `yaml:"key"`
	Values map[string]string `yaml:"values"`
	Format string            `yaml:"format"`
}

type Config struct {
	ApplicationID string       `yaml:"application_id"`
	Enabled       bool         `yaml:"enabled"`
	Sink          string       `yaml:"sink"`
	SinkFile      string       `yaml:"sink_file"`
	NATSURL       string       `yaml:"nats_url"`
	NATSSubject   string       `yaml:"nats_subject"`
	LibraryFile   string       `yaml:"library_file"`
	Release       Release      `yaml:"release"`
	AssetKeys     []string     `yaml:"asset_keys"`
	ReportRules   []ReportRule `yaml:"report_rules"`
	WorkDir       string       `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		ApplicationID: constants.DefaultApplicationID,
		Enabled:       true,
		Sink:          SinkLog,
		SinkFile:      "presence.json",
		NATSURL:       "nats://127.0.0.1:4222",
		NATSSubject:   "presence.update",
		LibraryFile:   "library.json",
	}
}

// Load builds the configuration from defaults, the optional presencesync.yaml
// in the working directory, and PRESENCE_* environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path falls back to
// ConfigFile in the working directory, which may be absent.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if wd, err := os.Getwd(); err == nil {
		cfg.WorkDir = wd
	}

	explicit := path != ""
	if !explicit {
		path = cfg.ConfigPath(ConfigFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if id := os.Getenv("PRESENCE_APPLICATION_ID"); id != "" {
		c.ApplicationID = id
	}

	if enabledStr := os.Getenv("PRESENCE_ENABLED"); enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return fmt.Errorf("invalid PRESENCE_ENABLED value %q: %w", enabledStr, err)
		}
		c.Enabled = enabled
	}

	if sink := os.Getenv("PRESENCE_SINK"); sink != "" {
		c.Sink = sink
	}

	if sinkFile := os.Getenv("PRESENCE_SINK_FILE"); sinkFile != "" {
		c.SinkFile = sinkFile
	}

	if url := os.Getenv("PRESENCE_NATS_URL"); url != "" {
		c.NATSURL = url
	}

	if subject := os.Getenv("PRESENCE_NATS_SUBJECT"); subject != "" {
		c.NATSSubject = subject
	}

	if library := os.Getenv("PRESENCE_LIBRARY_FILE"); library != "" {
		c.LibraryFile = library
	}

	return nil
}

func (c *Config) ConfigPath(filename string) string {
	if c.WorkDir == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.WorkDir, filename)
}

func (c *Config) LibraryPath() string {
	return c.ConfigPath(c.LibraryFile)
}

func (c *Config) SinkPath() string {
	return c.ConfigPath(c.SinkFile)
}

func (c *Config) ValidateSink() error {
	for _, s := range SupportedSinks {
		if c.Sink == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported sink: %s (supported: %v)", c.Sink, SupportedSinks)
}

// validateDataFile keeps data files inside the working directory.
func validateDataFile(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("%s cannot be an absolute path, got %q", field, name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%s cannot contain path traversal, got %q", field, name)
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("%s must be a simple filename, got path %q", field, name)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ApplicationID == "" {
		return fmt.Errorf("application_id cannot be empty")
	}
	if err := c.ValidateSink(); err != nil {
		return fmt.Errorf("invalid sink configuration: %w", err)
	}
	if err := validateDataFile("library_file", c.LibraryFile); err != nil {
		return err
	}
	if c.Sink == SinkFile {
		if err := validateDataFile("sink_file", c.SinkFile); err != nil {
			return err
		}
	}
	if c.Sink == SinkNATS {
		if c.NATSURL == "" {
			return fmt.Errorf("nats_url cannot be empty when sink is %q", SinkNATS)
		}
		if c.NATSSubject == "" || strings.ContainsAny(c.NATSSubject, " \t*>") {
			return fmt.Errorf("nats_subject must be a literal subject, got %q", c.NATSSubject)
		}
	}
	for i, r := range c.ReportRules {
		if r.Key == "" {
			return fmt.Errorf("report_rules[%d]: key cannot be empty", i)
		}
	}

	return nil
}
