package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/roster/internal/app"
	"github.com/mmynk/roster/internal/config"
)

type rootFlags struct {
	envFile     string
	dbPath      string
	metricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// Restore default handling so a second interrupt kills the process.
		stop()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "roster",
		Short:        "Employee records and salary management",
		Long:         "roster keeps employee records in SQLite. Run it without a subcommand for the interactive menu.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return a.Console(cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", ".env", "optional dotenv file to load")
	pf.StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics here on exit (overrides METRICS_FILE)")

	root.AddCommand(
		newListCmd(flags),
		newReportCmd(flags),
		newSeedCmd(flags),
		newAdjustCmd(flags),
		newHistoryCmd(flags),
	)
	return root
}

// withApp loads configuration, applies flag overrides and runs fn with a
// ready App, closing it afterwards.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, a *app.App) error) (err error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.metricsFile != "" {
		cfg.MetricsFile = flags.metricsFile
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := fn(cmd.Context(), a); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}
