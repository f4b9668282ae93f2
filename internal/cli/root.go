package cli

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/lazypower/leveltrack/internal/config"
	"github.com/lazypower/leveltrack/internal/store"
	"github.com/lazypower/leveltrack/internal/tracker"
)

var (
	cfgPath string
	dbPath  string
	verbose bool

	cfg    = config.Default()
	logger = slog.Default()

	// clock decides what "today" is. Tests swap in a fake.
	clock = clockwork.NewRealClock()

	uiFiles fs.FS
)

var rootCmd = &cobra.Command{
	Use:               "leveltrack",
	Short:             "Track a daily level and the last seven days of it",
	Long:              "leveltrack records one level entry per day and keeps a rolling seven-day history in a local SQLite database.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. ui is served by `leveltrack serve`.
func Execute(ui fs.FS) error {
	uiFiles = ui
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.leveltrack/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config and LEVELTRACK_DB)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads configuration and installs the logger once flags are parsed.
func setup(cmd *cobra.Command, args []string) error {
	path := cfgPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".leveltrack", "config.yaml")
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		loaded.Database.Path = dbPath
	}

	level, _ := loaded.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg = loaded
	return nil
}

// resolveDBPath returns the absolute path of the configured database,
// falling back to the default path.
func resolveDBPath() (string, error) {
	path := cfg.Database.Path
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return "", err
		}
	}
	return filepath.Abs(path)
}

// openDB opens the configured database.
func openDB() (*store.DB, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	return store.Open(path)
}

func newService(db *store.DB, opts ...tracker.Option) *tracker.Service {
	opts = append([]tracker.Option{tracker.WithClock(clock), tracker.WithLogger(logger)}, opts...)
	return tracker.New(db, opts...)
}
