package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is the desktop browser string sent to the search provider
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux i686) AppleWebKit/537.17 (KHTML, like Gecko) Chrome/24.0.1312.27 Safari/537.17"

// Config holds all configuration options for the image scraper
type Config struct {
	// Search provider settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Terminal output settings
	UI UIConfig `yaml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds settings for the token page and the JSON search endpoint
type SearchConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	Locale    string `yaml:"locale" json:"locale"`
	PageSize  int    `yaml:"page_size" json:"page_size"`
	// Timeout applies to token and search requests; zero means no timeout
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`
	SkipFailedPages bool          `yaml:"skip_failed_pages" json:"skip_failed_pages"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Amount  int           `yaml:"amount" json:"amount"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
}

// UIConfig holds terminal output preferences
type UIConfig struct {
	Quiet bool `yaml:"quiet" json:"quiet"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with the stock search parameters
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:   "https://duckduckgo.com",
			UserAgent: DefaultUserAgent,
			Locale:    "nl-nl",
			PageSize:  100,
		},
		Download: DownloadConfig{
			Amount:  1000,
			Timeout: 120 * time.Second,
		},
		Output: OutputConfig{
			BaseDirectory: "./images",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from DDGSCRAPER_* environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("DDGSCRAPER_BASE_URL"); baseURL != "" {
		c.Search.BaseURL = baseURL
	}
	if userAgent := os.Getenv("DDGSCRAPER_USER_AGENT"); userAgent != "" {
		c.Search.UserAgent = userAgent
	}
	if locale := os.Getenv("DDGSCRAPER_LOCALE"); locale != "" {
		c.Search.Locale = locale
	}
	if skip := os.Getenv("DDGSCRAPER_SKIP_FAILED_PAGES"); skip != "" {
		c.Search.SkipFailedPages = strings.ToLower(skip) == "true"
	}

	if amount := os.Getenv("DDGSCRAPER_AMOUNT"); amount != "" {
		val, err := strconv.Atoi(amount)
		if err != nil {
			return fmt.Errorf("invalid DDGSCRAPER_AMOUNT %q: %w", amount, err)
		}
		c.Download.Amount = val
	}
	if timeout := os.Getenv("DDGSCRAPER_DOWNLOAD_TIMEOUT"); timeout != "" {
		val, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid DDGSCRAPER_DOWNLOAD_TIMEOUT %q: %w", timeout, err)
		}
		c.Download.Timeout = val
	}

	if outputDir := os.Getenv("DDGSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}

	if quiet := os.Getenv("DDGSCRAPER_QUIET"); quiet != "" {
		c.UI.Quiet = strings.ToLower(quiet) == "true"
	}

	if logLevel := os.Getenv("DDGSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("DDGSCRAPER_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".ddgscraper.yaml",
		".ddgscraper.yml",
		filepath.Join(home, ".config", "ddgscraper", "config.yaml"),
		filepath.Join(home, ".config", "ddgscraper", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Search.BaseURL == "" {
		errs = append(errs, errors.New("search base URL is required"))
	}
	if c.Search.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Search.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if c.Search.Timeout < 0 {
		errs = append(errs, errors.New("search timeout cannot be negative"))
	}

	if c.Download.Amount < 0 {
		errs = append(errs, errors.New("amount cannot be negative"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Flags carries command line overrides. Nil fields were not set by the user.
type Flags struct {
	Amount          *int
	OutputDir       *string
	DownloadTimeout *time.Duration
	SkipFailedPages *bool
	Quiet           *bool
	LogLevel        *string
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags Flags) {
	if flags.Amount != nil {
		c.Download.Amount = *flags.Amount
	}
	if flags.OutputDir != nil {
		c.Output.BaseDirectory = *flags.OutputDir
	}
	if flags.DownloadTimeout != nil {
		c.Download.Timeout = *flags.DownloadTimeout
	}
	if flags.SkipFailedPages != nil {
		c.Search.SkipFailedPages = *flags.SkipFailedPages
	}
	if flags.Quiet != nil {
		c.UI.Quiet = *flags.Quiet
	}
	if flags.LogLevel != nil {
		c.Logging.Level = *flags.LogLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags Flags) (*Config, error) {
	// Missing .env files are not an error
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".ddgscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
