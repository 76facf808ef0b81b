package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiuyha/portfolio-content/internal/app"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

const defaultGracefulTimeout = 30 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the content API server",
		Long: `Start the content API server. Visitors get a snapshot in their preferred language
from /v1/snapshot and can switch languages with PUT /v1/language/{code}; /v1/pages serves
the per-language pages a static build would write.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	cmd.Flags().String("address", "", "Address to listen on (defaults to server.address)")
	cmd.Flags().String("redirect-base", "/", "Path prefix of the language pages /v1/redirect points to")
	for _, name := range []string{"address", "redirect-base"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			logger.Fatalf("Failed to bind %s flag: %v", name, err)
		}
	}
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	opts := []app.PortfolioAppOptions{
		app.WithConfig(cfg),
		app.WithRedirectBase(v.GetString("redirect-base")),
	}
	if address := v.GetString("address"); address != "" {
		opts = append(opts, app.WithAddress(address))
	}

	portfolioApp, err := app.NewPortfolioApp(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- portfolioApp.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			_ = portfolioApp.Stop(defaultGracefulTimeout)
			return err
		}
		return nil
	case <-quit:
	}

	return portfolioApp.Stop(defaultGracefulTimeout)
}
