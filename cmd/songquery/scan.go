package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/errmsg"
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder...]",
	Short: "Scan library folders into the song database",
	Long: `Scan walks the given folders, or library_sources from the config when
none are given. Folders holding a song.ini are read as one song each; other
audio files are read from their tags. Unchanged songs are not parsed again
and songs that disappeared from a scanned folder are removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := scanSources(args, cfg.LibrarySources)
		if len(sources) == 0 {
			return errors.New("no folders to scan: pass folders or set library_sources in config.toml")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scanner := catalog.NewScanner(store,
			catalog.WithScanLogger(logger),
			catalog.WithScanWorkers(cfg.ScanWorkers()))

		progress := make(chan catalog.ScanProgress)
		done := make(chan struct{})
		go func() {
			defer close(done)
			reportProgress(cmd.ErrOrStderr(), progress)
		}()

		stats, err := scanner.Scan(ctx, sources, progress)
		<-done
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpCatalogScan, err))
		}

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), stats)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s added, %s updated, %s removed, %s skipped\n",
			humanize.Comma(int64(stats.Added)),
			humanize.Comma(int64(stats.Updated)),
			humanize.Comma(int64(stats.Removed)),
			humanize.Comma(int64(stats.Skipped)))
		return nil
	},
}

// scanSources returns the folders named on the command line, or the
// configured ones.
func scanSources(args, configured []string) []string {
	if len(args) > 0 {
		return args
	}
	return configured
}

// reportProgress prints scan progress on a single updating line until
// progress is closed.
func reportProgress(w io.Writer, progress <-chan catalog.ScanProgress) {
	printed := false
	for p := range progress {
		switch p.Phase {
		case catalog.PhaseProcessing:
			fmt.Fprintf(w, "\rprocessing %s/%s", humanize.Comma(int64(p.Current)), humanize.Comma(int64(p.Total)))
			printed = true
		case catalog.PhaseCleaning, catalog.PhaseDone:
			if printed {
				fmt.Fprintln(w)
				printed = false
			}
		}
	}
	if printed {
		fmt.Fprintln(w)
	}
}
