package main

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/songsearch/internal/songsearch"
)

var (
	searchSort  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Filter the stored songs with one or more queries",
	Long: `Search runs each query in turn against the same search session, so a
query that extends the previous one reuses its results. Queries are
';'-separated filters such as "artist:queen; year:1980"; a piece without
a prefix is a free-text search over names and artists.

Prefixes: artist: source: album: charter: year: genre: playlist: name:
title: instrument:`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sort, err := sortFlag(searchSort)
		if err != nil {
			return err
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		searcher := songsearch.New(cat,
			songsearch.WithLogger(logger),
			songsearch.WithWorkers(cfg.SearchWorkers()))

		out := cmd.OutOrStdout()
		for i, query := range args {
			result := searcher.Search(query, sort)
			if flagJSON {
				if err := writeJSON(out, toJSONCategories(result)); err != nil {
					return err
				}
				continue
			}
			if len(args) > 1 {
				if i > 0 {
					writeLine(out, "")
				}
				writeLine(out, "# "+query)
			}
			writeCategories(out, result, searchLimit)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort attribute (default: default_sort from config)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum songs printed per query (0: all)")
}
