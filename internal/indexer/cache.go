package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/robert-at-pretension-io/verilog-doc/internal/extractor"
)

// cacheVersion invalidates on-disk entries when the extraction output
// shape or parser behavior changes.
const cacheVersion = "1"

// moduleCache persists per-file extraction results keyed by content
// hash. The index maps source paths to entries; each entry points at a
// JSON file holding the extracted modules.
type moduleCache struct {
	dir   string
	index map[string]cacheEntry
}

type cacheEntry struct {
	ContentHash string `json:"content_hash"`
	ModulesFile string `json:"modules_file"`
	Version     string `json:"version"`
}

type cacheIndex struct {
	Version string                `json:"version"`
	Entries map[string]cacheEntry `json:"entries"`
}

// openModuleCache loads the cache index from dir, creating the
// directory if needed. A missing or unreadable index starts empty; an
// index written by a different version is discarded.
func openModuleCache(dir string) (*moduleCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	c := &moduleCache{dir: dir, index: make(map[string]cacheEntry)}

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		return c, nil
	}
	var idx cacheIndex
	if err := json.Unmarshal(data, &idx); err != nil || idx.Version != cacheVersion {
		return c, nil
	}
	if idx.Entries != nil {
		c.index = idx.Entries
	}
	return c, nil
}

// get returns the cached modules for path if the entry matches the
// given content hash.
func (c *moduleCache) get(path, contentHash string) ([]extractor.Module, bool) {
	entry, ok := c.index[path]
	if !ok || entry.ContentHash != contentHash || entry.Version != cacheVersion {
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(c.dir, entry.ModulesFile))
	if err != nil {
		return nil, false
	}
	var modules []extractor.Module
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, false
	}
	return modules, true
}

// put stores the modules for path under the given content hash. The
// modules file name is derived from the hash so stale files never
// shadow fresh content.
func (c *moduleCache) put(path, contentHash string, modules []extractor.Module) error {
	name := contentHash[:16] + ".json"
	if err := writeJSONAtomic(filepath.Join(c.dir, name), modules); err != nil {
		return err
	}
	c.index[path] = cacheEntry{
		ContentHash: contentHash,
		ModulesFile: name,
		Version:     cacheVersion,
	}
	return nil
}

// save writes the index back to disk.
func (c *moduleCache) save() error {
	idx := cacheIndex{Version: cacheVersion, Entries: c.index}
	return writeJSONAtomic(filepath.Join(c.dir, "index.json"), idx)
}

// writeJSONAtomic writes v as JSON via a temp file and rename, so a
// crash mid-write never leaves a truncated file behind.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// hashFile returns the hex sha256 of a file's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
