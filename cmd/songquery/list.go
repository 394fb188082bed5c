package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songsearch/internal/catalog"
)

var listSort string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories of the stored songs for a sort",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sort, err := sortFlag(listSort)
		if err != nil {
			return err
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		categories := cat.Sorted(sort)
		out := cmd.OutOrStdout()
		if flagJSON {
			return writeJSON(out, categorySummaries(categories))
		}
		for _, c := range categories {
			fmt.Fprintf(out, "%s\t%s\n", c.Name, humanize.Comma(int64(len(c.Songs))))
		}
		writeLine(out, summary(categories))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort attribute (default: default_sort from config)")
}

type categorySummary struct {
	Name  string `json:"name"`
	Songs int    `json:"songs"`
}

func categorySummaries(categories []catalog.Category) []categorySummary {
	out := make([]categorySummary, len(categories))
	for i, c := range categories {
		out[i] = categorySummary{Name: c.Name, Songs: len(c.Songs)}
	}
	return out
}
