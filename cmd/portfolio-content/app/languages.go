package app

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiuyha/portfolio-content/internal/app"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

func newLanguagesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages from the languages sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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

			langs, err := comps.Builder.Languages(ctx)
			if err != nil {
				return fmt.Errorf("failed to load languages: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Code", "Display Name", "Sheet")
			for _, l := range langs {
				if err := table.Append([]string{l.Code, l.DisplayName, l.SheetName}); err != nil {
					return fmt.Errorf("failed to render languages: %w", err)
				}
			}
			return table.Render()
		},
	}
}
