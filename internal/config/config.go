package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/popcli/pop/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI. Each can also be supplied through the
// environment, e.g. new.symbol → POP_NEW_SYMBOL.
const (
	KeyTemplate  = "new.template"
	KeySymbol    = "new.symbol"
	KeyDecimals  = "new.decimals"
	KeyEndowment = "new.endowment"
	KeyPath      = "new.path"
	KeySource    = "new.source"
	KeyLogLevel  = "log.level"
)

// Dir returns the path to the config directory (~/.pop/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pop/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Reset drops every loaded value and binding. Used between command runs in tests.
func Reset() {
	viper.Reset()
}

// BindFlag makes key resolve to the flag value when the flag was set on the
// command line, falling back to env, config file, and finally the flag default.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %q: flag not defined", key)
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding %q to --%s: %w", key, flag.Name, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsSet reports whether key has a value from any source.
func IsSet(key string) bool {
	return viper.IsSet(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
