package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiuyha/portfolio-content/internal/aggregate"
	"github.com/kiuyha/portfolio-content/internal/app"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/storage"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write one content page per supported language",
		Long: `Build fetches the language list and the language-independent content once, then
writes one JSON page per supported language, languages.json and manifest.json to the
output directory. The build fails when the languages sheet cannot be loaded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), v, cmd)
		},
	}
	cmd.Flags().String("out", "./dist", "Output directory")
	if err := v.BindPFlag("out", cmd.Flags().Lookup("out")); err != nil {
		logger.Fatalf("Failed to bind out flag: %v", err)
	}
	return cmd
}

func runBuild(ctx context.Context, v *viper.Viper, cmd *cobra.Command) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	comps, err := app.NewComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := comps.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warnf("Failed to release components: %v", err)
		}
	}()

	out := v.GetString("out")
	manifest, err := app.RunBuild(ctx, comps.Builder, storage.NewFileStore(out))
	if err != nil {
		var loadErr *aggregate.AggregateLoadError
		if errors.As(err, &loadErr) {
			return fmt.Errorf("build aborted, content is unavailable: %w", err)
		}
		return fmt.Errorf("build failed: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s in %s\n", len(manifest.Pages), out, manifest.Duration)
	return err
}
