package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/config"
	"github.com/llehouerou/songsearch/internal/errmsg"
	"github.com/llehouerou/songsearch/internal/logging"
	"github.com/llehouerou/songsearch/internal/songsearch"
	"github.com/llehouerou/songsearch/internal/state"
	"github.com/llehouerou/songsearch/internal/ui/browser"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpLogOpen, cfg.LogFile, err))
		return 1
	}
	defer closeLog()

	sort, err := cfg.SortAttribute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpDatabaseOpen, cfg.Database, err))
		return 1
	}
	defer store.Close()

	songs, err := store.Songs()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpCatalogLoad, err))
		return 1
	}
	logger.Info("catalog loaded", "songs", len(songs), "sort", sort)

	cat := catalog.New(songs)
	searcher := songsearch.New(cat,
		songsearch.WithLogger(logger),
		songsearch.WithWorkers(cfg.SearchWorkers()))

	session, err := state.New(store.DB())
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	defer func() {
		if err := session.Flush(); err != nil {
			logger.Error("save session", "error", err)
		}
	}()

	opts := []browser.Option{
		browser.WithLogger(logger),
		browser.WithOnChange(func(query string, sort catalog.Attribute) {
			session.Save(state.Session{Query: query, Sort: sort.String()})
		}),
	}
	if saved, err := session.Get(); err != nil {
		logger.Warn("load session", "error", err)
	} else if saved != nil {
		if attr, err := catalog.ParseAttribute(saved.Sort); err == nil && attr != catalog.Unspecified {
			sort = attr
		}
		opts = append(opts, browser.WithQuery(saved.Query))
	}
	if len(cfg.LibrarySources) > 0 {
		scanner := catalog.NewScanner(store,
			catalog.WithScanLogger(logger),
			catalog.WithScanWorkers(cfg.ScanWorkers()))
		opts = append(opts, browser.WithRescan(func() ([]*catalog.Song, catalog.ScanStats, error) {
			stats, err := scanner.Scan(context.Background(), cfg.LibrarySources, nil)
			if err != nil {
				return nil, stats, err
			}
			songs, err := store.Songs()
			return songs, stats, err
		}))
	}

	p := tea.NewProgram(browser.New(searcher, cat, sort, opts...), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}

	if m, ok := final.(browser.Model); ok && m.Selected() != nil {
		fmt.Println(m.Selected().Path)
	}
	return 0
}

// openLogger logs to the configured file; the terminal belongs to the
// browser, so without a log file nothing is logged.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.Discard(), func() {}, nil
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, level), func() { f.Close() }, nil
}
