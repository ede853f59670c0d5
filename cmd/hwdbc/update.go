package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/radixdb/hwdbc"
	"github.com/radixdb/hwdbc/internal/cache"
	"github.com/radixdb/hwdbc/journal"
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "rebuild the compiled hardware database from .hwdb source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runUpdate(cfg)
		},
	}
}

func runUpdate(cfg Config) error {
	logf := func(format string, args ...any) { slog.Debug(fmt.Sprintf(format, args...)) }

	c, err := cache.Open(cfg.CachePath, cache.Options{Logf: logf, Verbose: cfg.Verbose})
	if err != nil {
		return err
	}
	defer c.Close()

	files, err := enumerateSourceFiles(cfg.Directories)
	if err != nil {
		return err
	}

	pool := hwdbc.NewPool()
	builder := hwdbc.NewBuilder(pool)

	var filesRead, filesSkipped, filesCached int
	for _, path := range files {
		_, cached, err := buildFromFile(builder, c, path)
		if err != nil {
			slog.Warn("skipping unreadable source file", "path", path, "error", err)
			filesSkipped++
			continue
		}
		filesRead++
		if cached {
			filesCached++
		}
	}

	if err := hwdbc.Serialize(builder, cfg.OutputPath); err != nil {
		return err
	}

	info, err := os.Stat(cfg.OutputPath)
	if err != nil {
		return err
	}

	hist := hwdbc.OpenHistory(cfg.HistoryDir, journal.Options{DebugName: "hwdbc-history", Verbose: cfg.Verbose})
	defer hist.FinishWriting()

	summary := hwdbc.BuildSummary{
		StartedUnix:  time.Now().Unix(),
		FilesRead:    filesRead,
		FilesSkipped: filesSkipped,
		FilesCached:  filesCached,
		Stats:        builder.Stats(),
		OutputPath:   cfg.OutputPath,
		OutputSize:   info.Size(),
	}
	return hwdbc.AppendBuildSummary(hist, summary)
}

// buildFromFile loads one source file's triples — from the cache if
// its stat tuple and content hash still match, otherwise by running
// the parser — and inserts them into builder. It returns the number
// of triples inserted and whether the cache was used.
func buildFromFile(builder *hwdbc.Builder, c *cache.Cache, path string) (int, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, err
	}
	hash := xxhash.Sum64(data)
	size := info.Size()
	modTime := info.ModTime().Unix()

	if triples, ok := c.Lookup(path, size, modTime, hash); ok {
		for _, t := range triples {
			if err := builder.Insert(t.Pattern, t.Key, t.Value); err != nil {
				return 0, true, err
			}
		}
		return len(triples), true, nil
	}

	var triples []cache.CachedTriple
	err = hwdbc.ParseInto(bytes.NewReader(data), path, func(pattern, key, value []byte) error {
		triples = append(triples, cache.CachedTriple{
			Pattern: append([]byte(nil), pattern...),
			Key:     append([]byte(nil), key...),
			Value:   append([]byte(nil), value...),
		})
		return builder.Insert(pattern, key, value)
	})
	if err != nil {
		return 0, false, err
	}
	if err := c.Store(path, size, modTime, hash, triples); err != nil {
		slog.Warn("failed to update parse cache", "path", path, "error", err)
	}
	return len(triples), false, nil
}

// enumerateSourceFiles lists *.hwdb files across cfg.Directories, one
// level deep per directory (no recursion, matching an hwdb.d-style
// layout), sorted lexicographically within each directory; later
// directories are appended after earlier ones, so a same-named file
// in a later directory naturally overrides it at the builder level
// (§6: last insert for a given (pattern, key) wins).
func enumerateSourceFiles(dirs []string) ([]string, error) {
	var all []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".hwdb") {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			all = append(all, filepath.Join(dir, name))
		}
	}
	return all, nil
}
