package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"maeum/internal/cli"
	"maeum/internal/log"
	"maeum/internal/menu"
)

var configPath string

func main() {
	cli.LoadEnvFile()

	rootCmd := &cobra.Command{
		Use:           "maeum",
		Short:         "마음기록기: one emotion and note per day",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				return m.Run(ctx)
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("MAEUM_CONFIG"), "YAML config file")

	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(weeklyCmd())
	rootCmd.AddCommand(monthlyCmd())
	rootCmd.AddCommand(mapCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(weatherCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withMenu wires the application and hands a menu bound to the command's
// streams to fn. Resources are released when fn returns.
func withMenu(cmd *cobra.Command, fn func(ctx context.Context, m *menu.Menu) error) error {
	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Failed to release resources", log.FieldError, err)
		}
	}()

	m := menu.New(app.Journal, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	return fn(ctx, m)
}
