// Config loading for the yo CLI.
package cli

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys; each can also be set as YO_<KEY> in the environment.
	cfgKeyUser     = "user"
	cfgKeyLogLevel = "log_level"

	envPrefix       = "YO"
	defaultLogLevel = "warn"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	User     string `yaml:"user,omitempty"`
	LogLevel string `yaml:"log_level"`
}

// loadConfig reads config.yaml from the data directory using Viper.
// A missing config.yaml is not an error.
func loadConfig(dataDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dataDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, userName string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		User:     userName,
		LogLevel: defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// configPath returns the config.yaml location inside a data directory.
func configPath(dataDir string) string {
	return filepath.Join(dataDir, configFileExt)
}

// osUserName returns the login name of the current OS user, or "unknown".
func osUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
