package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		yamlContent string
		environment map[string]string
		wantErr     string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full file",
			yamlContent: `spreadsheet:
  endpoint: https://sheets.example.com
  id: sheet-123
  sheets:
    languages: langs
  languageRetries: 5
contributions:
  profileUrl: https://github.com/octocat
articles:
  profileUrl: https://medium.com/@someone
http:
  timeout: 3s
cache:
  redis:
    url: redis://localhost:6379/0
    ttl: 10m
server:
  address: 127.0.0.1:9090
telemetry:
  enabled: true
  metrics:
    enabled: true
    exporter: prometheus`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://sheets.example.com", cfg.Spreadsheet.Endpoint)
				assert.Equal(t, "sheet-123", cfg.Spreadsheet.ID)
				assert.Equal(t, "langs", cfg.Spreadsheet.Sheets.Languages)
				assert.Equal(t, "projects", cfg.Spreadsheet.Sheets.Projects)
				assert.Equal(t, uint(5), cfg.GetLanguageRetries())
				assert.Equal(t, "https://github.com/octocat", cfg.Contributions.ProfileURL)
				assert.Equal(t, DefaultContributionsEndpoint, cfg.Contributions.Endpoint)
				assert.Equal(t, 3*time.Second, cfg.GetHTTPTimeout())
				assert.Equal(t, 10*time.Minute, cfg.GetCacheTTL())
				assert.True(t, cfg.SharedCacheEnabled())
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
				require.NotNil(t, cfg.Telemetry)
				assert.True(t, cfg.Telemetry.Metrics.Enabled)
			},
		},
		{
			name:        "environment overrides file",
			yamlContent: "spreadsheet:\n  id: from-file\n",
			environment: map[string]string{
				"PORTFOLIO_SPREADSHEET_ID": "from-env",
				"PORTFOLIO_MEDIUM_LINK":    "https://medium.com/@envuser",
			},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "from-env", cfg.Spreadsheet.ID)
				assert.Equal(t, "https://medium.com/@envuser", cfg.Articles.ProfileURL)
				assert.Equal(t, DefaultGitHubLink, cfg.Contributions.ProfileURL)
			},
		},
		{
			name:        "retries disabled",
			yamlContent: "spreadsheet:\n  id: abc\n  languageRetries: 0\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.NotNil(t, cfg.Spreadsheet.LanguageRetries)
				assert.Equal(t, uint(0), cfg.GetLanguageRetries())
			},
		},
		{
			name:        "defaults",
			yamlContent: "spreadsheet:\n  id: abc\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DefaultSpreadsheetEndpoint, cfg.Spreadsheet.Endpoint)
				assert.Equal(t, DefaultLanguageRetries, cfg.GetLanguageRetries())
				assert.Nil(t, cfg.Spreadsheet.LanguageRetries)
				assert.Equal(t, DefaultArticlesEndpoint, cfg.Articles.Endpoint)
				assert.Equal(t, DefaultFeedURLTemplate, cfg.Articles.FeedURLTemplate)
				assert.Equal(t, DefaultAddress, cfg.Server.Address)
				assert.Equal(t, DefaultHTTPTimeout, cfg.GetHTTPTimeout())
				assert.Equal(t, DefaultCacheTTL, cfg.GetCacheTTL())
				assert.False(t, cfg.SharedCacheEnabled())
				assert.Nil(t, cfg.Telemetry)
			},
		},
		{
			name:        "missing spreadsheet id",
			yamlContent: "log:\n  level: debug\n",
			wantErr:     "spreadsheet.id is required",
		},
		{
			name:        "bad endpoint scheme",
			yamlContent: "spreadsheet:\n  id: abc\n  endpoint: ftp://example.com\n",
			wantErr:     "spreadsheet.endpoint",
		},
		{
			name:        "bad timeout",
			yamlContent: "spreadsheet:\n  id: abc\nhttp:\n  timeout: soon\n",
			wantErr:     "http.timeout",
		},
		{
			name:        "feed template without placeholder",
			yamlContent: "spreadsheet:\n  id: abc\narticles:\n  feedUrlTemplate: https://medium.com/feed\n",
			wantErr:     "feedUrlTemplate",
		},
		{
			name:        "bad telemetry exporter",
			yamlContent: "spreadsheet:\n  id: abc\ntelemetry:\n  enabled: true\n  metrics:\n    enabled: true\n    exporter: statsd\n",
			wantErr:     "telemetry",
		},
		{
			name:        "invalid yaml",
			yamlContent: "spreadsheet: [",
			wantErr:     "failed to parse YAML config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := tt.environment
			if env == nil {
				env = map[string]string{}
			}
			cfg, err := LoadConfig(WithConfigPath(writeConfig(t, tt.yamlContent)), WithEnvironment(env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_WithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(WithEnvironment(map[string]string{"PORTFOLIO_SPREADSHEET_ID": "env-only"}))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Spreadsheet.ID)

	_, err = LoadConfig(WithoutEnvironment())
	require.Error(t, err)
}

func TestWithConfigPath(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(WithConfigPath(""))
	assert.ErrorContains(t, err, "path is required")

	_, err = LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "failed to evaluate symlinks")
}
