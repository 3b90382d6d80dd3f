package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/soundfetch/internal/catalog"
	"github.com/zjrosen/soundfetch/internal/log"
	"github.com/zjrosen/soundfetch/internal/paths"
)

// EnvPrefix prefixes environment overrides, e.g. SOUNDFETCH_SOUNDS_DIR.
const EnvPrefix = "SOUNDFETCH"

// SetDefaults registers every default with v so that environment
// overrides apply to keys missing from the config file.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("sounds_dir", d.SoundsDir)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("fallbacks", d.Fallbacks)
	v.SetDefault("drive.folder_id", d.Drive.FolderID)
	v.SetDefault("supabase.url", d.Supabase.URL)
	v.SetDefault("supabase.bucket", d.Supabase.Bucket)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.file", d.Tracing.File)
	v.SetDefault("ui.style", d.UI.Style)
}

// Load reads configuration into a Config.
//
// When configPath is set the file must exist. Otherwise the project-local
// .soundfetch.yaml is tried, then the per-user config file; a missing file
// is not an error. Returns the config and the file actually used ("" if
// none).
func Load(v *viper.Viper, configPath string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindFileIDEnv(v)

	used, err := readConfigFile(v, configPath)
	if err != nil {
		return Config{}, "", err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, used, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Drive.FileIDs == nil {
		cfg.Drive.FileIDs = map[string]string{}
	}
	cfg.SoundsDir = paths.ResolveSoundsDir(cfg.SoundsDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, used, fmt.Errorf("invalid config %s: %w", displayPath(used), err)
	}
	return cfg, used, nil
}

// bindFileIDEnv binds SOUNDFETCH_DRIVE_FILE_IDS_<NAME> for every catalog
// sound. AutomaticEnv only resolves keys viper already knows, and map entries
// under drive.file_ids are not known until a file sets them.
// drive.file_ids has no default because a map default shadows these keys.
func bindFileIDEnv(v *viper.Viper) {
	for _, name := range catalog.Default().Names() {
		_ = v.BindEnv("drive.file_ids."+name, EnvPrefix+"_DRIVE_FILE_IDS_"+strings.ToUpper(name))
	}
}

func readConfigFile(v *viper.Viper, configPath string) (string, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config %s: %w", configPath, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", configPath)
		return configPath, nil
	}

	for _, candidate := range []string{paths.ConfigFileName, paths.UserConfigPath()} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(candidate)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config %s: %w", candidate, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", candidate)
		return candidate, nil
	}

	log.Debug(log.CatConfig, "No config file found, using defaults")
	return "", nil
}

func displayPath(p string) string {
	if p == "" {
		return "(defaults)"
	}
	return p
}
