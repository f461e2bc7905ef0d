// Package indexer walks a source tree, extracts module documentation
// from every Verilog file, and keeps a persistent content-addressed
// cache so unchanged files are not reparsed across runs.
package indexer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/robert-at-pretension-io/verilog-doc/internal/config"
	"github.com/robert-at-pretension-io/verilog-doc/internal/extractor"
	"github.com/robert-at-pretension-io/verilog-doc/internal/facts"
)

// Indexer orchestrates file discovery, extraction and caching for one
// project root.
type Indexer struct {
	cfg     *config.Config
	ext     *extractor.Extractor
	log     zerolog.Logger
	noCache bool
}

// Option customizes an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(ix *Indexer) { ix.log = log }
}

// WithoutCache disables the persistent cache for this run.
func WithoutCache() Option {
	return func(ix *Indexer) { ix.noCache = true }
}

// New creates an Indexer for the given configuration.
func New(cfg *config.Config, opts ...Option) *Indexer {
	ix := &Indexer{
		cfg: cfg,
		ext: extractor.New(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Result holds the outcome of an indexing run.
type Result struct {
	Files     []facts.FileModules
	CacheHits int
	Failed    []string
}

// Run discovers Verilog files under root, extracts modules from each,
// and returns the per-file results in sorted path order. Files that
// fail to parse are logged and skipped; the run itself fails only on
// discovery or cache infrastructure errors.
func (ix *Indexer) Run(root string) (*Result, error) {
	start := time.Now()

	paths, err := ix.cfg.ResolveSources(root)
	if err != nil {
		return nil, fmt.Errorf("resolving sources: %w", err)
	}
	ix.log.Debug().Int("files", len(paths)).Str("root", root).Msg("discovered sources")

	var cache *moduleCache
	var timing *timingRecorder
	if ix.cfg.CacheEnabled() && !ix.noCache {
		dir := ix.cfg.Cache.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		cache, err = openModuleCache(dir)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		if t, err := openTimingRecorder(filepath.Join(dir, "timing.jsonl")); err == nil {
			timing = t
			defer timing.close()
		}
	}

	result := &Result{}
	for _, path := range paths {
		rel := relativeTo(root, path)
		fileStart := time.Now()

		modules, hit, err := ix.extractOne(path, cache)
		if err != nil {
			ix.log.Warn().Str("file", rel).Err(err).Msg("extraction failed")
			result.Failed = append(result.Failed, rel)
			continue
		}
		if hit {
			result.CacheHits++
		}
		timing.record(rel, "extract", time.Since(fileStart), hit)

		result.Files = append(result.Files, facts.FileModules{
			File:    rel,
			Modules: modules,
		})
		ix.log.Debug().Str("file", rel).Int("modules", len(modules)).Bool("cached", hit).Msg("extracted")
	}

	if cache != nil {
		if err := cache.save(); err != nil {
			return nil, fmt.Errorf("saving cache: %w", err)
		}
	}
	timing.record("", "run", time.Since(start), false)

	ix.log.Info().
		Int("files", len(result.Files)).
		Int("cache_hits", result.CacheHits).
		Int("failed", len(result.Failed)).
		Dur("elapsed", time.Since(start)).
		Msg("indexing complete")

	return result, nil
}

func (ix *Indexer) extractOne(path string, cache *moduleCache) ([]extractor.Module, bool, error) {
	if cache == nil {
		modules, err := ix.ext.ExtractFile(path)
		return modules, false, err
	}

	hash, err := hashFile(path)
	if err != nil {
		return nil, false, err
	}
	if modules, ok := cache.get(path, hash); ok {
		return modules, true, nil
	}

	modules, err := ix.ext.ExtractFile(path)
	if err != nil {
		return nil, false, err
	}
	if err := cache.put(path, hash, modules); err != nil {
		ix.log.Warn().Str("file", path).Err(err).Msg("cache write failed")
	}
	return modules, false, nil
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
