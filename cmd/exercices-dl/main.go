package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/download"
	"github.com/handiism/exercices-downloader/internal/http"
	"github.com/handiism/exercices-downloader/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile  string
	saveConfig  string
	catalogFile string
	outputDir   string
	seed        uint64
	dryRun      bool
	verbose     bool
)

// errCancelled marks a run stopped by a signal.
var errCancelled = errors.New("download cancelled")

var rootCmd = &cobra.Command{
	Use:   "exercices-dl",
	Short: "Download exam papers and sort them by year, subject and difficulty",
	Long: `Downloads every exercise listed in the catalog into
~/Exercices/<year>/<subject>/Quarter <n>/<difficulty>/<title>.pdf.

Without flags the built-in catalog is used.`,
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

		// Apply flags
		if outputDir != "" {
			settings.OutputRoot = outputDir
		}
		if dryRun {
			settings.DryRun = true
		}
		if cmd.Flags().Changed("seed") {
			settings.Seed = &seed
		}

		if saveConfig != "" {
			if err := settings.Save(saveConfig); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Printf("Settings written to %s\n", saveConfig)
			return nil
		}

		logger, err := logging.New(logging.Config{Verbose: verbose})
		if err != nil {
			return err
		}
		defer logger.Sync()

		return run(cmd.Context(), settings, logger.With(zap.String("run_id", uuid.NewString())))
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML settings file")
	rootCmd.Flags().StringVar(&saveConfig, "save-config", "", "Write the effective settings to this YAML file and exit")
	rootCmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a YAML catalog (default: built-in catalog)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: ~/Exercices)")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for difficulty labels, for reproducible runs")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse listings without downloading")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
}

// run downloads the catalog. Unexpected panics are logged and turned into an
// error; the HTTP client is closed whatever happens.
func run(ctx context.Context, settings *config.Settings, logger *zap.Logger) (err error) {
	catalog, err := config.LoadCatalog(catalogFile)
	if err != nil {
		return err
	}

	client := http.NewClient(settings.ToClientConfig(logger))
	defer client.Close()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("An error occurred", zap.Any("panic", r))
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	logger.Info("Starting download",
		zap.String("output", settings.OutputRoot),
		zap.Int("sources", catalog.URLCount()),
		zap.Bool("dry_run", settings.DryRun),
	)

	manager := download.NewManager(settings, client, settings.NewClassifier(), logging.ProgressFunc(logger))

	stats, err := manager.Run(ctx, catalog)
	if err != nil {
		if ctx.Err() != nil {
			return errCancelled
		}
		return err
	}

	logger.Info(fmt.Sprintf("Complete! Downloaded %d/%d files (%s)", stats.Downloaded, stats.Attachments, humanize.Bytes(uint64(stats.Bytes))),
		zap.Int("sources", stats.Listings),
		zap.Int("source_errors", stats.ListingErrors),
		zap.Int("download_errors", stats.DownloadErrors),
		zap.Int("save_errors", stats.SaveErrors),
	)
	return nil
}

func main() {
	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(os.Stderr, "\nDownload cancelled.")
			stop()
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
