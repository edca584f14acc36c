package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 1000, config.Download.Amount)
	assert.Equal(t, 120*time.Second, config.Download.Timeout)
	assert.Equal(t, "./images", config.Output.BaseDirectory)
	assert.Equal(t, 100, config.Search.PageSize)
	assert.Equal(t, "nl-nl", config.Search.Locale)
	assert.Equal(t, DefaultUserAgent, config.Search.UserAgent)
	assert.Zero(t, config.Search.Timeout, "token and search requests have no timeout by default")
	assert.False(t, config.Search.SkipFailedPages)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DDGSCRAPER_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("DDGSCRAPER_AMOUNT", "300")
	t.Setenv("DDGSCRAPER_DOWNLOAD_TIMEOUT", "45s")
	t.Setenv("DDGSCRAPER_OUTPUT_DIR", "/tmp/test-images")
	t.Setenv("DDGSCRAPER_SKIP_FAILED_PAGES", "TRUE")
	t.Setenv("DDGSCRAPER_QUIET", "true")
	t.Setenv("DDGSCRAPER_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "http://127.0.0.1:9999", config.Search.BaseURL)
	assert.Equal(t, 300, config.Download.Amount)
	assert.Equal(t, 45*time.Second, config.Download.Timeout)
	assert.Equal(t, "/tmp/test-images", config.Output.BaseDirectory)
	assert.True(t, config.Search.SkipFailedPages)
	assert.True(t, config.UI.Quiet)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Run("amount", func(t *testing.T) {
		t.Setenv("DDGSCRAPER_AMOUNT", "lots")
		assert.Error(t, DefaultConfig().LoadFromEnv())
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv("DDGSCRAPER_DOWNLOAD_TIMEOUT", "soon")
		assert.Error(t, DefaultConfig().LoadFromEnv())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero amount", func(c *Config) { c.Download.Amount = 0 }, false},
		{"negative amount", func(c *Config) { c.Download.Amount = -100 }, true},
		{"zero download timeout", func(c *Config) { c.Download.Timeout = 0 }, true},
		{"negative search timeout", func(c *Config) { c.Search.Timeout = -time.Second }, true},
		{"missing output directory", func(c *Config) { c.Output.BaseDirectory = "" }, true},
		{"missing user agent", func(c *Config) { c.Search.UserAgent = "" }, true},
		{"zero page size", func(c *Config) { c.Search.PageSize = 0 }, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"uppercase log level", func(c *Config) { c.Logging.Level = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	amount := 250
	outdir := "/flag/output"
	timeout := 10 * time.Second
	skip := true
	level := "error"

	config.MergeCommandLineFlags(Flags{
		Amount:          &amount,
		OutputDir:       &outdir,
		DownloadTimeout: &timeout,
		SkipFailedPages: &skip,
		LogLevel:        &level,
	})

	assert.Equal(t, 250, config.Download.Amount)
	assert.Equal(t, "/flag/output", config.Output.BaseDirectory)
	assert.Equal(t, 10*time.Second, config.Download.Timeout)
	assert.True(t, config.Search.SkipFailedPages)
	assert.Equal(t, "error", config.Logging.Level)
	assert.False(t, config.UI.Quiet, "unset flags leave values untouched")
}

func TestSaveAndLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Download.Amount = 500
	config.Download.Timeout = 90 * time.Second
	config.Search.Locale = "en-us"

	require.NoError(t, config.Save(configPath))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(configPath))

	assert.Equal(t, 500, loaded.Download.Amount)
	assert.Equal(t, 90*time.Second, loaded.Download.Timeout)
	assert.Equal(t, "en-us", loaded.Search.Locale)
}

func TestLoadFromFileErrors(t *testing.T) {
	config := DefaultConfig()
	assert.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))

	badPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("download: [not, a, map"), 0644))
	assert.Error(t, config.LoadFromFile(badPath))
}

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
download:
  amount: 200
output:
  base_directory: ./from-file
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	t.Setenv("DDGSCRAPER_OUTPUT_DIR", "./from-env")
	amount := 300

	config, err := Load(configPath, Flags{Amount: &amount})
	require.NoError(t, err)

	// flags > env > file > defaults
	assert.Equal(t, 300, config.Download.Amount)
	assert.Equal(t, "./from-env", config.Output.BaseDirectory)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, 120*time.Second, config.Download.Timeout)

	negative := -1
	_, err = Load(configPath, Flags{Amount: &negative})
	assert.Error(t, err)
}
