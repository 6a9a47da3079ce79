package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/logging"
	"github.com/conneroisu/sitecfg/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	watchFile     string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-validate the config file on every change",
	Long: `Watch the config file and validate it again each time it is saved.
Bursts of editor writes are debounced into one check. Results are logged;
the command runs until interrupted.

Examples:
  sitecfg watch                        # Watch the config file in use
  sitecfg watch --file site.yml        # Watch a specific file
  sitecfg watch --debounce 1s          # Wait longer for writes to settle`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFile, "file", "", "Config file to watch (default: the config file in use)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Debounce delay for file changes")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := watchFile
	if path == "" {
		path = viper.GetViper().ConfigFileUsed()
	}
	if path == "" {
		path = config.DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.WithComponent("watch").With("file", path)

	fileWatcher, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.NoBackupFilter)
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		return handleConfigChange(ctx, log, path, events)
	})

	if err := fileWatcher.WatchFile(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	// Report the current state before the first change arrives.
	reportConfig(ctx, log, path)

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	log.Info(ctx, "Watching for changes", "debounce", watchDebounce.String())

	<-ctx.Done()
	log.Info(context.Background(), "Stopped watching")

	return nil
}

func handleConfigChange(ctx context.Context, log logging.Logger, path string, events []watcher.ChangeEvent) error {
	for _, event := range events {
		if event.Type == watcher.EventTypeDeleted || event.Type == watcher.EventTypeRenamed {
			if _, err := os.Stat(path); err != nil {
				log.Warn(ctx, err, "Config file is gone", "event", event.Type.String())
				return nil
			}
		}
	}

	reportConfig(ctx, log, path)
	return nil
}

// reportConfig validates path and logs the outcome. It never fails: a broken
// file is logged and the watch continues.
func reportConfig(ctx context.Context, log logging.Logger, path string) {
	s, result, err := config.LoadFile(path)
	if err != nil {
		log.Error(ctx, err, "Config file cannot be read")
		return
	}

	if !result.Valid {
		log.Error(ctx, result.Err(), "Configuration is invalid",
			"fields", result.Fields(),
		)
		return
	}

	for _, warning := range result.Warnings {
		log.Warn(ctx, nil, warning.Message, "field", warning.Field)
	}

	log.Info(ctx, "Configuration is valid",
		"title", s.Metadata.Title,
		"sections", s.Navigation.Len(),
		"warnings", len(result.Warnings),
	)
}
