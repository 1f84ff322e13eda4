package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the invoicer home directory.
const FileName = "config.yaml"

// EnvPrefix prefixes every environment override (INVOICER_DB_PATH, INVOICER_LOG_LEVEL, ...).
const EnvPrefix = "INVOICER"

// Config represents the invoicer configuration.
type Config struct {
	DBPath    string    `yaml:"db_path"`
	BackupDir string    `yaml:"backup_dir"` // default directory for exports
	Seed      bool      `yaml:"seed"`       // seed the sample history on first run
	Log       LogConfig `yaml:"log"`
}

// LogConfig is the logging section of the config file.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DefaultDir returns the invoicer home directory: $INVOICER_HOME, or
// ~/.invoicer.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".invoicer"), nil
}

// Defaults returns the configuration used when nothing is set.
func Defaults(dir string) *Config {
	return &Config{
		DBPath:    filepath.Join(dir, "invoicer.db"),
		BackupDir: ".",
		Seed:      true,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
	}
}

// LoadConfig reads config.yaml from dir and applies INVOICER_* environment
// overrides. A missing config file is not an error.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Defaults(dir)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("backup_dir", def.BackupDir)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.output", def.Log.Output)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		DBPath:    expandHome(v.GetString("db_path")),
		BackupDir: expandHome(v.GetString("backup_dir")),
		Seed:      v.GetBool("seed"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}, nil
}

// SaveConfig writes config.yaml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Exists reports whether dir already holds a config file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
