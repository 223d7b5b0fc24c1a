package config

import (
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	homedir.DisableCache = true
}

func TestReadSettings_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v := viper.New()

	require.NoError(t, ReadSettings(v, ""), "A missing default settings file is not an error")

	s, err := DecodeSettings(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultTaxYear, s.TaxYear)
	assert.Equal(t, "single", s.FilingStatus)
	assert.Equal(t, "console", s.Format)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Empty(t, s.RulesFile)
}

func TestReadSettings_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TAXGO_FORMAT", "csv")
	v := viper.New()

	require.NoError(t, ReadSettings(v, filepath.Join("testdata", "settings.yaml")))

	s, err := DecodeSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 2025, s.TaxYear)
	assert.Equal(t, "head_of_household", s.FilingStatus)
	assert.Equal(t, "csv", s.Format, "Environment overrides the file")
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, filepath.Join(home, "rules", "custom.yaml"), s.RulesFile)
}

func TestReadSettings_ExplicitFileMissing(t *testing.T) {
	v := viper.New()
	err := ReadSettings(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
