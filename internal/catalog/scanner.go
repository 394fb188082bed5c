package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/llehouerou/songsearch/internal/logging"
)

const defaultScanWorkers = 8

// Scan phases reported on the progress channel.
const (
	PhaseScanning   = "scanning"
	PhaseProcessing = "processing"
	PhaseCleaning   = "cleaning"
	PhaseDone       = "done"
)

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase   string
	Current int
	Total   int
	Stats   *ScanStats // Only populated when Phase == PhaseDone
}

// ScanStats summarizes a completed scan.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
	Skipped int // unreadable files
}

// songFile is a discovered song: either a song.ini chart folder or a
// tagged audio file.
type songFile struct {
	path   string
	mtime  int64
	source string
	isINI  bool
}

// Scanner reads song metadata from library folders into a Store.
type Scanner struct {
	store   *Store
	logger  *slog.Logger
	workers int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScanLogger sets the scanner logger.
func WithScanLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logging.Default(logger).With("component", "scanner")
	}
}

// WithScanWorkers sets the number of files parsed in parallel.
func WithScanWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewScanner creates a scanner writing into store.
func NewScanner(store *Store, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		store:   store,
		logger:  logging.Discard(),
		workers: defaultScanWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan performs an incremental scan of sources: new and modified songs are
// parsed and stored, songs no longer on disk are removed. progress may be
// nil; otherwise it is closed when Scan returns.
func (s *Scanner) Scan(ctx context.Context, sources []string, progress chan<- ScanProgress) (ScanStats, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p ScanProgress) {
		if progress != nil {
			progress <- p
		}
	}

	var stats ScanStats
	start := time.Now()

	report(ScanProgress{Phase: PhaseScanning})
	files, err := discoverSongs(ctx, sources)
	if err != nil {
		return stats, err
	}

	existing, err := s.store.Mtimes()
	if err != nil {
		return stats, fmt.Errorf("load stored songs: %w", err)
	}

	discovered := make(map[string]struct{}, len(files))
	toProcess := make([]songFile, 0, len(files))
	for _, f := range files {
		discovered[f.path] = struct{}{}
		if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
			continue
		}
		toProcess = append(toProcess, f)
	}

	infos, skipped := s.processSongs(ctx, toProcess, report)
	stats.Skipped = skipped
	for _, info := range infos {
		if _, ok := existing[info.Path]; ok {
			stats.Updated++
		} else {
			stats.Added++
		}
	}
	if err := s.store.Upsert(infos); err != nil {
		return stats, fmt.Errorf("store songs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	report(ScanProgress{Phase: PhaseCleaning})
	var removed []string
	for path := range existing {
		if _, ok := discovered[path]; ok || !underAny(path, sources) {
			continue
		}
		removed = append(removed, path)
	}
	if err := s.store.Delete(removed); err != nil {
		return stats, fmt.Errorf("remove missing songs: %w", err)
	}
	stats.Removed = len(removed)

	s.logger.Info("scan complete",
		"sources", len(sources),
		"found", len(files),
		"added", stats.Added,
		"updated", stats.Updated,
		"removed", stats.Removed,
		"skipped", stats.Skipped,
		"duration", time.Since(start))

	report(ScanProgress{Phase: PhaseDone, Current: len(files), Total: len(files), Stats: &stats})
	return stats, nil
}

// processSongs parses files in parallel. Results come back in no
// particular order; unreadable files are counted and skipped.
func (s *Scanner) processSongs(ctx context.Context, files []songFile, report func(ScanProgress)) ([]SongInfo, int) {
	total := len(files)
	if total == 0 {
		return nil, 0
	}

	var processed, skipped atomic.Int64
	workCh := make(chan songFile)
	resultCh := make(chan SongInfo, total)

	var wg sync.WaitGroup
	for range min(s.workers, total) {
		wg.Go(func() {
			for f := range workCh {
				info, err := readSong(f)
				processed.Add(1)
				if err != nil {
					skipped.Add(1)
					s.logger.Debug("skip unreadable song", "path", f.path, "error", err)
					continue
				}
				resultCh <- info
			}
		})
	}

	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case workCh <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				report(ScanProgress{Phase: PhaseProcessing, Current: int(processed.Load()), Total: total})
			case <-done:
				return
			}
		}
	}()

	wg.Wait()
	close(resultCh)
	close(done)
	<-tickerDone

	infos := make([]SongInfo, 0, total)
	for info := range resultCh {
		infos = append(infos, info)
	}
	report(ScanProgress{Phase: PhaseProcessing, Current: total, Total: total})
	return infos, int(skipped.Load())
}

func readSong(f songFile) (SongInfo, error) {
	var (
		info SongInfo
		err  error
	)
	if f.isINI {
		info, err = readSongINI(f.path, f.source)
	} else {
		info, err = readAudioTags(f.path, f.source)
	}
	if err != nil {
		return SongInfo{}, err
	}
	info.Path = f.path
	info.Mtime = f.mtime
	return info, nil
}

// discoverSongs walks the sources. A directory holding a song.ini is one
// song and is not descended into; elsewhere every audio file is a song.
func discoverSongs(ctx context.Context, sources []string) ([]songFile, error) {
	var files []songFile
	for _, src := range sources {
		err := filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Skip unreadable entries and keep scanning the rest of the tree
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			if d.IsDir() {
				ini := filepath.Join(path, songININame)
				st, err := os.Stat(ini)
				if err != nil || st.IsDir() {
					return nil //nolint:nilerr // not a chart folder
				}
				files = append(files, songFile{
					path:   ini,
					mtime:  st.ModTime().Unix(),
					source: src,
					isINI:  true,
				})
				return filepath.SkipDir
			}

			if !isAudioFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // skip files we can't stat
			}
			files = append(files, songFile{
				path:   path,
				mtime:  info.ModTime().Unix(),
				source: src,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func underAny(path string, sources []string) bool {
	for _, src := range sources {
		rel, err := filepath.Rel(src, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// sourceName is the display name of a library source folder.
func sourceName(source string) string {
	return filepath.Base(filepath.Clean(source))
}
