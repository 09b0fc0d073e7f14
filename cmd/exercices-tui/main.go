package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/logging"
	"github.com/handiism/exercices-downloader/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile  string
	catalogFile string
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:           "exercices-tui",
	Short:         "Interactive exam paper downloader",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.DefaultSettings()
		if configFile != "" {
			var err error
			settings, err = config.Load(configFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
		}

		catalog, err := config.LoadCatalog(catalogFile)
		if err != nil {
			return err
		}

		// The screen belongs to the TUI, so logs only go to a file.
		logger := zap.NewNop()
		if logFile != "" {
			logger, err = logging.New(logging.Config{Verbose: true, OutputPaths: []string{logFile}})
			if err != nil {
				return err
			}
			defer logger.Sync()
		}

		return tui.Run(cmd.Context(), settings, catalog, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML settings file")
	rootCmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a YAML catalog (default: built-in catalog)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
