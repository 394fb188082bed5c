// Command songquery scans song libraries and runs queries against the
// stored catalog without the interactive browser.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/config"
	"github.com/llehouerou/songsearch/internal/errmsg"
	"github.com/llehouerou/songsearch/internal/logging"
)

// Global flag values.
var (
	flagDatabase string
	flagLogLevel string
	flagJSON     bool
)

// Set by PersistentPreRunE for every subcommand.
var (
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "songquery",
	Short: "Scan song libraries and query them",
	Long: `songquery keeps a database of the songs found in your library folders
and filters it with the same query language as the songsearch browser:

  songquery search "artist:queen; year:1980"
  songquery search --sort instrument "instrument:bass"`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "song database (default: from config, then XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	levelName := cfg.LogLevel
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger = logging.New(cmd.ErrOrStderr(), level)

	path := cfg.Database
	if flagDatabase != "" {
		path = flagDatabase
	}
	store, err = catalog.Open(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpDatabaseOpen, path, err))
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if store != nil {
		return store.Close()
	}
	return nil
}

// loadCatalog reads every stored song into a catalog.
func loadCatalog() (*catalog.Catalog, error) {
	songs, err := store.Songs()
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpCatalogLoad, err))
	}
	logger.Debug("catalog loaded", "songs", len(songs))
	return catalog.New(songs), nil
}

// sortFlag resolves the --sort value, falling back to the configured
// default sort.
func sortFlag(value string) (catalog.Attribute, error) {
	if value == "" {
		return cfg.SortAttribute()
	}
	attr, err := catalog.ParseAttribute(value)
	if err != nil {
		return catalog.Name, errors.New(errmsg.FormatWith(errmsg.OpSearchSort, value, err))
	}
	return attr, nil
}
