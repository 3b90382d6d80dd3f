// Package config provides configuration types and defaults for soundfetch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/soundfetch/internal/catalog"
	"github.com/zjrosen/soundfetch/internal/log"
	"github.com/zjrosen/soundfetch/internal/paths"
)

// Config holds all configuration options for soundfetch.
type Config struct {
	SoundsDir string         `mapstructure:"sounds_dir"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	ChunkSize int            `mapstructure:"chunk_size"`
	Fallbacks bool           `mapstructure:"fallbacks"` // try public fallback URLs
	Drive     DriveConfig    `mapstructure:"drive"`
	Supabase  SupabaseConfig `mapstructure:"supabase"`
	Log       LogConfig      `mapstructure:"log"`
	Tracing   TracingConfig  `mapstructure:"tracing"`
	UI        UIConfig       `mapstructure:"ui"`
}

// DriveConfig holds the shared-folder source.
type DriveConfig struct {
	FolderID string `mapstructure:"folder_id"`
	// FileIDs maps logical sound names to external file identifiers.
	FileIDs map[string]string `mapstructure:"file_ids"`
}

// SupabaseConfig holds the public storage bucket source.
type SupabaseConfig struct {
	URL    string `mapstructure:"url"` // e.g. https://<project>.supabase.co
	Bucket string `mapstructure:"bucket"`
}

// LogConfig holds structured logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty logs to stderr
}

// Tracing exporters.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// TracingConfig holds OpenTelemetry options.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"` // host:port for otlp
	File     string `mapstructure:"file"`     // stdout exporter target, empty for stderr
}

// UIConfig holds terminal output options.
type UIConfig struct {
	// Style selects the instruction rendering style.
	// Valid values: "auto", "dark", "light", "notty"
	Style string `mapstructure:"style"`
}

// ValidStyles lists the accepted ui.style values.
var ValidStyles = []string{"auto", "dark", "light", "notty"}

// Defaults returns a Config with sensible default values.
// No source is enabled, so a default run never downloads anything.
func Defaults() Config {
	return Config{
		SoundsDir: paths.DefaultSoundsDir,
		Timeout:   30 * time.Second,
		ChunkSize: 8192,
		Drive: DriveConfig{
			FolderID: catalog.DriveFolderID,
			FileIDs:  map[string]string{},
		},
		Supabase: SupabaseConfig{
			Bucket: "mindshift-audio",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Tracing: TracingConfig{
			Exporter: ExporterStdout,
		},
		UI: UIConfig{
			Style: "auto",
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Tracing.Exporter {
	case ExporterStdout:
	case ExporterOTLP:
		if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
			return fmt.Errorf("tracing.endpoint is required for the otlp exporter")
		}
	default:
		return fmt.Errorf("tracing.exporter: unknown exporter %q", c.Tracing.Exporter)
	}

	if !isValidStyle(c.UI.Style) {
		return fmt.Errorf("ui.style: unknown style %q", c.UI.Style)
	}

	if _, err := catalog.Default().WithDriveIDs(c.Drive.FileIDs); err != nil {
		return fmt.Errorf("drive.file_ids: %w", err)
	}
	return nil
}

func isValidStyle(style string) bool {
	for _, s := range ValidStyles {
		if s == style {
			return true
		}
	}
	return false
}

// Catalog returns the built-in catalog with configured identifiers applied.
func (c Config) Catalog() (*catalog.Catalog, error) {
	return catalog.Default().WithDriveIDs(c.Drive.FileIDs)
}

// YAML renders the configuration in config-file form.
func (c Config) YAML() ([]byte, error) {
	type driveView struct {
		FolderID string            `yaml:"folder_id"`
		FileIDs  map[string]string `yaml:"file_ids"`
	}
	type supabaseView struct {
		URL    string `yaml:"url"`
		Bucket string `yaml:"bucket"`
	}
	type logView struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	}
	type tracingView struct {
		Enabled  bool   `yaml:"enabled"`
		Exporter string `yaml:"exporter"`
		Endpoint string `yaml:"endpoint"`
		File     string `yaml:"file"`
	}
	type uiView struct {
		Style string `yaml:"style"`
	}
	view := struct {
		SoundsDir string       `yaml:"sounds_dir"`
		Timeout   string       `yaml:"timeout"`
		ChunkSize int          `yaml:"chunk_size"`
		Fallbacks bool         `yaml:"fallbacks"`
		Drive     driveView    `yaml:"drive"`
		Supabase  supabaseView `yaml:"supabase"`
		Log       logView      `yaml:"log"`
		Tracing   tracingView  `yaml:"tracing"`
		UI        uiView       `yaml:"ui"`
	}{
		SoundsDir: c.SoundsDir,
		Timeout:   c.Timeout.String(),
		ChunkSize: c.ChunkSize,
		Fallbacks: c.Fallbacks,
		Drive:     driveView(c.Drive),
		Supabase:  supabaseView(c.Supabase),
		Log:       logView(c.Log),
		Tracing:   tracingView(c.Tracing),
		UI:        uiView(c.UI),
	}
	return yaml.Marshal(view)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# soundfetch configuration

# Directory the sound files are written to (relative to the working directory)
sounds_dir: public/sounds

# Per-request timeout and streaming chunk size
timeout: 30s
chunk_size: 8192

# Try the public fallback URLs after the configured sources
fallbacks: false

# Shared cloud-storage folder
drive:
  folder_id: 1otf8TUyzd7VUNnyobl49pds6QMwG3k_k
  # File IDs per sound. Find them in the share link:
  #   drive.google.com/file/d/[FILE_ID]/view
  file_ids: {}
  #   rain: 1AbCdEfGhIjKlMnOpQrStUvWxYz
  #   ocean: ...
  #
  # Sounds: rain, ocean, forest, river, birds, wind, fireplace,
  #         meditation, piano, ambient

# Public storage bucket (optional)
supabase:
  url: ""
  bucket: mindshift-audio

# Structured logging
log:
  level: warn   # debug | info | warn | error
  file: ""      # empty logs to stderr

# OpenTelemetry tracing
tracing:
  enabled: false
  exporter: stdout   # stdout | otlp
  endpoint: ""       # host:port, required for otlp
  file: ""           # stdout exporter target, empty for stderr

# Terminal output
ui:
  style: auto   # auto | dark | light | notty
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
