// Package cli implements the command-line interface for cubelayers.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelayers"
	"github.com/SeamusWaldron/cubelayers/internal/config"
	"github.com/SeamusWaldron/cubelayers/internal/journal"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
)

var (
	// Global flags
	configDir   string
	journalPath string
	noJournal   bool
	notes       string
	verbose     bool
)

// rootCmd is the base command. Run without a subcommand it opens the
// interactive view.
var rootCmd = &cobra.Command{
	Use:   "cubelayers",
	Short: "Interactive 3x3x3 cube with 2D layer views",
	Long: `cubelayers - turn a 3x3x3 cube in the terminal and work it one layer at a time.

The cube is shown unfolded alongside a 2D view of each horizontal layer and
a holding bay. Turn slices with the move letters, drag cubies between the
active layers and the bay, replay your moves in reverse, or watch the
scripted two-layer solve.`,
	Version:      cubelayers.Version,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: ~/.cubelayers)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Journal database path (default: <config-dir>/journal.db)")
	rootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "Do not record the session")
	rootCmd.PersistentFlags().StringVar(&notes, "notes", "", "Notes stored with the journaled session")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves the configuration, letting flags override the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir := configDir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	v, err := config.Viper(dir)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("journal"); f != nil {
		if err := v.BindPFlag(config.KeyJournal, f); err != nil {
			return nil, err
		}
	}
	if noJournal {
		v.Set(config.KeyJournal, "")
	}
	if verbose {
		v.Set(config.KeyLogLevel, "debug")
	}
	return config.FromViper(v, dir)
}

// newLogger builds the logger for cfg. The interactive view owns the
// terminal, so without a log file it logs nowhere; other commands fall
// back to stderr.
func newLogger(cfg *config.Config, interactive bool) (*logrus.Logger, func(), error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log_level %q", config.ErrInvalid, cfg.LogLevel)
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	closer := func() {}
	switch {
	case cfg.LogFile != "":
		path := cfg.LogFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dir, path)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		closer = func() { f.Close() }
	case interactive:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return log, closer, nil
}

// openJournal opens the configured journal, or returns nil when
// journaling is off.
func openJournal(cfg *config.Config) (*journal.Journal, error) {
	if cfg.Journal == "" {
		return nil, nil
	}
	j, err := journal.OpenJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return j, nil
}

// sessionOptions maps the configuration onto session options.
func sessionOptions(cfg *config.Config, log *logrus.Logger, j *journal.Journal) ([]cubelayers.Option, error) {
	keys, err := parseLayers(cfg.ActiveLayers)
	if err != nil {
		return nil, err
	}
	opts := []cubelayers.Option{
		cubelayers.WithLogger(log),
		cubelayers.WithDurations(cfg.TurnDuration, cfg.SwapDuration),
		cubelayers.WithTiming(cfg.StepPause, cfg.SettlePause),
		cubelayers.WithActiveLayers(keys...),
	}
	if j != nil {
		opts = append(opts, cubelayers.WithJournal(j, notes))
	}
	return opts, nil
}

// parseLayers converts layer names, accepting the aliases ParseKey knows.
func parseLayers(names []string) ([]layer.Key, error) {
	keys := make([]layer.Key, 0, len(names))
	for _, n := range names {
		k, err := layer.ParseKey(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
