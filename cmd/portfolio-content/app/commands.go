// Package app provides the command line interface of the portfolio content service.
package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiuyha/portfolio-content/internal/config"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/versions"
)

const envPrefix = "PORTFOLIO"

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:               "portfolio-content",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Portfolio content service",
		Long: `Portfolio content service loads portfolio content from a spreadsheet, a code-hosting
statistics provider and an article feed, then serves it as JSON or writes one static page
per supported language.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Initialize(v.GetString("log-level"), v.GetBool("debug"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug mode")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("config", "", "Path to configuration file (YAML format)")
	for _, name := range []string{"debug", "log-level", "config"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			logger.Fatalf("Failed to bind %s flag: %v", name, err)
		}
	}

	rootCmd.AddCommand(
		newServeCmd(v),
		newBuildCmd(v),
		newLanguagesCmd(v),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration file named by --config, if any, on top of the
// environment
func loadConfig(v *viper.Viper) (*config.Config, error) {
	var opts []config.Option
	if path := v.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// the configured level applies unless the flag or environment already chose one
	if v.GetString("log-level") == "" && cfg.Log.Level != "" {
		if err := logger.Initialize(cfg.Log.Level, v.GetBool("debug")); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to read format flag: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(out, string(output))
				return err
			}
			_, err = fmt.Fprintf(out, "portfolio-content %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")
	return cmd
}
