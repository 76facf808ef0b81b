// Package app provides application lifecycle management for the portfolio content server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kiuyha/portfolio-content/internal/config"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

// PortfolioApp encapsulates all components needed to run the content API server
type PortfolioApp struct {
	config     *config.Config
	components *Components
	httpServer *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start blocks until the HTTP server stops or encounters an error
func (app *PortfolioApp) Start() error {
	logger.Infof("Server listening on %s", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server, then releases the components
func (app *PortfolioApp) Stop(timeout time.Duration) error {
	logger.Info("Shutting down server...")

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := app.components.Close(shutdownCtx); err != nil {
		logger.Errorf("Failed to release components: %v", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *PortfolioApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server (useful for testing to get the actual port)
func (app *PortfolioApp) GetHTTPServer() *http.Server {
	return app.httpServer
}

// GetComponents returns the wired components
func (app *PortfolioApp) GetComponents() *Components {
	return app.components
}
