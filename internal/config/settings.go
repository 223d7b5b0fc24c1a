package config

import (
	"fmt"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Settings holds the CLI defaults read from ~/.taxgo.yaml and TAXGO_* env vars
type Settings struct {
	TaxYear      int    `mapstructure:"tax_year"`
	FilingStatus string `mapstructure:"filing_status"`
	RulesFile    string `mapstructure:"rules_file"`
	Format       string `mapstructure:"format"`
	LogLevel     string `mapstructure:"log_level"`
}

// SettingsFileName is the base name of the settings file in the home directory
const SettingsFileName = ".taxgo"

// SetSettingsDefaults registers the default value of every settings key
func SetSettingsDefaults(v *viper.Viper) {
	v.SetDefault("tax_year", DefaultTaxYear)
	v.SetDefault("filing_status", "single")
	v.SetDefault("rules_file", "")
	v.SetDefault("format", "console")
	v.SetDefault("log_level", "warn")
}

// ReadSettings points v at cfgFile, or at $HOME/.taxgo.yaml when cfgFile is
// empty, and reads it. A missing default file is not an error.
func ReadSettings(v *viper.Viper, cfgFile string) error {
	SetSettingsDefaults(v)
	v.SetEnvPrefix("TAXGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(SettingsFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

// DecodeSettings returns the effective settings held by v
func DecodeSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.RulesFile != "" {
		expanded, err := homedir.Expand(s.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to expand rules_file: %w", err)
		}
		s.RulesFile = filepath.Clean(expanded)
	}
	return &s, nil
}
