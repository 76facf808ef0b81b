package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/onsi/gomega"

	portfolioapp "github.com/kiuyha/portfolio-content/internal/app"
	"github.com/kiuyha/portfolio-content/internal/config"
)

// ServerTestHelper manages the content API server lifecycle for testing
type ServerTestHelper struct {
	ctx        context.Context
	configPath string
	baseURL    string
	address    string
	httpClient *http.Client
	app        *portfolioapp.PortfolioApp
}

// NewServerTestHelper creates a helper listening on a free local port
func NewServerTestHelper(ctx context.Context, configPath string) (*ServerTestHelper, error) {
	port, err := freePort()
	if err != nil {
		return nil, err
	}
	return &ServerTestHelper{
		ctx:        ctx,
		configPath: configPath,
		address:    fmt.Sprintf("127.0.0.1:%d", port),
		baseURL:    fmt.Sprintf("http://127.0.0.1:%d", port),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// StartServer starts the content API server programmatically
func (s *ServerTestHelper) StartServer() error {
	cfg, err := config.LoadConfig(config.WithConfigPath(s.configPath), config.WithoutEnvironment())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := portfolioapp.NewPortfolioApp(s.ctx,
		portfolioapp.WithConfig(cfg),
		portfolioapp.WithAddress(s.address),
	)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}
	s.app = app

	go func() {
		if err := app.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Server start failed: %v\n", err)
		}
	}()
	return nil
}

// StopServer gracefully stops the server
func (s *ServerTestHelper) StopServer() error {
	if s.app != nil {
		return s.app.Stop(5 * time.Second)
	}
	return nil
}

// WaitForServerReady waits for the server to accept requests
func (s *ServerTestHelper) WaitForServerReady(timeout time.Duration) {
	gomega.Eventually(func() error {
		resp, err := s.httpClient.Get(s.baseURL + "/health")
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return nil
	}, timeout, 100*time.Millisecond).Should(gomega.Succeed(), "Server should be ready")
}

// Do sends a request with an optional Accept-Language header
func (s *ServerTestHelper) Do(method, path, acceptLanguage string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(s.ctx, method, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	return s.httpClient.Do(req)
}

// DecodeJSON reads resp into v and closes the body
func DecodeJSON(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// WriteConfigYAML writes a configuration pointing every provider at baseURL
func WriteConfigYAML(dir, baseURL string) string {
	content := fmt.Sprintf(`spreadsheet:
  endpoint: %[1]s/sheets
  id: %[2]s
  languageRetries: 1
contributions:
  endpoint: %[1]s/contributions
  profileUrl: https://github.com/octocat
articles:
  endpoint: %[1]s/articles
  profileUrl: https://medium.com/@octocat
http:
  timeout: 2s
`, baseURL, SpreadsheetID)

	path := filepath.Join(dir, "config.yaml")
	gomega.Expect(os.WriteFile(path, []byte(content), 0600)).To(gomega.Succeed())
	return path
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	defer func() {
		_ = l.Close()
	}()
	return l.Addr().(*net.TCPAddr).Port, nil
}
