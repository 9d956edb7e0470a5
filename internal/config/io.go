package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"epoca/internal/logger"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var clog = logger.PackageLogger("🔧 CONFIG")

// EnvPrefix prefixes the environment variables that override scalar keys,
// e.g. EPOCA_SERVER_HOST or EPOCA_SSH_PRIVATE_KEY_PATH.
const EnvPrefix = "EPOCA"

// Dir returns the directory searched for the config file after the working
// directory: $XDG_CONFIG_HOME/epoca, or ~/.config/epoca.
func Dir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, ConfigName)
}

// DefaultPath is where `config init` writes when no path is given.
func DefaultPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, ConfigFile)
	}
	return ConfigFile
}

// Load reads the configuration. An explicit path must exist; otherwise the
// working directory and Dir() are searched and a missing file means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("local_path", def.LocalPath)
	v.SetDefault("ssh_private_key_path", def.SSHPrivateKeyPath)
	v.SetDefault("server.user", def.Server.User)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// config init writes yaml whatever the file extension
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		clog.Debug("No config file found, using defaults")
	} else {
		clog.Debug("Using config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config format: %w", err)
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if len(cfg.Projects) == 0 {
		cfg.Projects = DefaultProjects()
	}
	cfg.LocalPath = ExpandHome(cfg.LocalPath)
	cfg.SSHPrivateKeyPath = ExpandHome(cfg.SSHPrivateKeyPath)

	return &cfg, nil
}

// Save writes cfg as YAML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
