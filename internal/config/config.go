// Package config provides configuration loading for the content pipeline.
//
// Configuration comes from an optional YAML file, then environment variables, then
// defaults for anything still unset.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

const (
	// DefaultSpreadsheetEndpoint serves spreadsheet sheets as JSON row arrays
	DefaultSpreadsheetEndpoint = "https://opensheet.elk.sh"

	// DefaultContributionsEndpoint serves contribution calendars by username
	DefaultContributionsEndpoint = "https://github-contributions-api.jogruber.de/v4"

	// DefaultArticlesEndpoint converts an RSS feed to JSON
	DefaultArticlesEndpoint = "https://api.rss2json.com/v1/api.json"

	// DefaultFeedURLTemplate builds the feed URL from a username
	DefaultFeedURLTemplate = "https://medium.com/feed/@%s"

	// DefaultGitHubLink is used when no code-hosting profile is configured
	DefaultGitHubLink = "https://github.com/kiuyha"

	// DefaultMediumLink is used when no article profile is configured
	DefaultMediumLink = "https://medium.com/@kiuyha"

	// DefaultAddress is the listen address of the serve command
	DefaultAddress = ":8080"

	// DefaultHTTPTimeout bounds each provider round trip
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultCacheTTL is how long shared cache entries live in Redis
	DefaultCacheTTL = time.Hour

	// DefaultLanguageRetries applies when languageRetries is not set
	DefaultLanguageRetries uint = 3
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

type loaderConfig struct {
	path        string
	skipEnv     bool
	environment map[string]string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// WithEnvironment overrides the process environment used for PORTFOLIO_* variables
func WithEnvironment(environment map[string]string) Option {
	return func(cfg *loaderConfig) error {
		cfg.environment = environment
		return nil
	}
}

// WithoutEnvironment disables environment overrides
func WithoutEnvironment() Option {
	return func(cfg *loaderConfig) error {
		cfg.skipEnv = true
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Spreadsheet   SpreadsheetConfig   `yaml:"spreadsheet"`
	Contributions ContributionsConfig `yaml:"contributions"`
	Articles      ArticlesConfig      `yaml:"articles"`
	HTTP          HTTPConfig          `yaml:"http"`
	Cache         CacheConfig         `yaml:"cache"`
	Server        ServerConfig        `yaml:"server"`
	Log           LogConfig           `yaml:"log"`

	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// SpreadsheetConfig defines the spreadsheet-backed content store
type SpreadsheetConfig struct {
	// Endpoint is the base URL; sheets are fetched from {endpoint}/{id}/{sheet}
	Endpoint string `yaml:"endpoint,omitempty"`

	// ID is the spreadsheet identifier
	ID string `yaml:"id" env:"PORTFOLIO_SPREADSHEET_ID"`

	Sheets SheetsConfig `yaml:"sheets,omitempty"`

	// LanguageRetries is how many times the language sheet is retried before giving up.
	// Unset means DefaultLanguageRetries; 0 disables retries.
	LanguageRetries *uint `yaml:"languageRetries,omitempty"`
}

// SheetsConfig names the content sheets. Translation sheets are named by the languages sheet.
type SheetsConfig struct {
	Languages    string `yaml:"languages,omitempty"`
	Projects     string `yaml:"projects,omitempty"`
	Achievements string `yaml:"achievements,omitempty"`
}

// ContributionsConfig defines the code-hosting statistics provider
type ContributionsConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`

	// ProfileURL is the code-hosting profile; the username is its last path segment
	ProfileURL string `yaml:"profileUrl,omitempty" env:"PORTFOLIO_GITHUB_LINK"`
}

// ArticlesConfig defines the feed-to-JSON provider
type ArticlesConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`

	// FeedURLTemplate is a fmt template receiving the username
	FeedURLTemplate string `yaml:"feedUrlTemplate,omitempty"`

	// ProfileURL is the article profile; the username follows the "@"
	ProfileURL string `yaml:"profileUrl,omitempty" env:"PORTFOLIO_MEDIUM_LINK"`
}

// HTTPConfig defines the outbound HTTP client
type HTTPConfig struct {
	// Timeout is a duration string, e.g. "10s"
	Timeout   string `yaml:"timeout,omitempty"`
	UserAgent string `yaml:"userAgent,omitempty"`
}

// CacheConfig defines the optional cross-process shared cache
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig enables the Redis shared store when URL is set
type RedisConfig struct {
	URL       string `yaml:"url,omitempty" env:"PORTFOLIO_REDIS_URL"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`
}

// ServerConfig defines the JSON API host
type ServerConfig struct {
	Address string `yaml:"address,omitempty" env:"PORTFOLIO_ADDRESS"`
}

// LogConfig defines logging
type LogConfig struct {
	Level string `yaml:"level,omitempty" env:"PORTFOLIO_LOG_LEVEL"`
}

// LoadConfig builds the configuration. Without WithConfigPath only environment and
// defaults are used.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	var config Config
	if loaderCfg.path != "" {
		data, err := os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if !loaderCfg.skipEnv {
		envOpts := env.Options{}
		if loaderCfg.environment != nil {
			envOpts.Environment = loaderCfg.environment
		}
		if err := env.ParseWithOptions(&config, envOpts); err != nil {
			return nil, fmt.Errorf("failed to parse environment: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Spreadsheet.Endpoint, DefaultSpreadsheetEndpoint)
	setDefault(&c.Spreadsheet.Sheets.Languages, "languages")
	setDefault(&c.Spreadsheet.Sheets.Projects, "projects")
	setDefault(&c.Spreadsheet.Sheets.Achievements, "achievements")
	setDefault(&c.Contributions.Endpoint, DefaultContributionsEndpoint)
	setDefault(&c.Contributions.ProfileURL, DefaultGitHubLink)
	setDefault(&c.Articles.Endpoint, DefaultArticlesEndpoint)
	setDefault(&c.Articles.FeedURLTemplate, DefaultFeedURLTemplate)
	setDefault(&c.Articles.ProfileURL, DefaultMediumLink)
	setDefault(&c.Cache.Redis.KeyPrefix, "portfolio:")
	setDefault(&c.Server.Address, DefaultAddress)
	setDefault(&c.Log.Level, "info")
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

func (c *Config) validate() error {
	var errs []error

	if c.Spreadsheet.ID == "" {
		errs = append(errs, fmt.Errorf("spreadsheet.id is required (or set PORTFOLIO_SPREADSHEET_ID)"))
	}
	for name, endpoint := range map[string]string{
		"spreadsheet.endpoint":   c.Spreadsheet.Endpoint,
		"contributions.endpoint": c.Contributions.Endpoint,
		"articles.endpoint":      c.Articles.Endpoint,
	} {
		if err := validateURL(endpoint); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if !strings.Contains(c.Articles.FeedURLTemplate, "%s") {
		errs = append(errs, fmt.Errorf("articles.feedUrlTemplate must contain %%s"))
	}
	if c.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.HTTP.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("http.timeout must be a valid duration (e.g., '10s'): %w", err))
		}
	}
	if c.Cache.Redis.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.Redis.TTL); err != nil {
			errs = append(errs, fmt.Errorf("cache.redis.ttl must be a valid duration (e.g., '1h'): %w", err))
		}
	}
	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// GetHTTPTimeout returns the provider round trip timeout
func (c *Config) GetHTTPTimeout() time.Duration {
	if d, err := time.ParseDuration(c.HTTP.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultHTTPTimeout
}

// GetLanguageRetries returns the configured language sheet retries
func (c *Config) GetLanguageRetries() uint {
	if c.Spreadsheet.LanguageRetries == nil {
		return DefaultLanguageRetries
	}
	return *c.Spreadsheet.LanguageRetries
}

// GetCacheTTL returns the shared cache entry lifetime
func (c *Config) GetCacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.Redis.TTL); err == nil && d > 0 {
		return d
	}
	return DefaultCacheTTL
}

// SharedCacheEnabled reports whether a Redis shared store is configured
func (c *Config) SharedCacheEnabled() bool {
	return c.Cache.Redis.URL != ""
}
