// Package extractor parses Verilog source files and extracts module
// definitions: ports, parameters, documentation sections and submodule
// instances. It performs no elaboration or semantic checking; module
// bodies are scanned only for the constructs the documentation model
// needs and everything else is skipped.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Extractor parses files and caches the results per path, so repeated
// extraction of the same file during a batch run does no rework. The
// cache granularity is the whole file; there is no sub-module or
// incremental caching.
type Extractor struct {
	mu    sync.Mutex
	cache map[string][]Module
}

// New creates an Extractor with an empty cache.
func New() *Extractor {
	return &Extractor{cache: make(map[string][]Module)}
}

// ExtractFile parses the named file, consulting the cache first. The
// returned slice is shared with the cache and must not be modified.
func (e *Extractor) ExtractFile(path string) ([]Module, error) {
	e.mu.Lock()
	cached, ok := e.cache[path]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	modules, err := ParseText(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e.mu.Lock()
	e.cache[path] = modules
	e.mu.Unlock()
	return modules, nil
}

// ExtractText parses a source buffer directly, bypassing the cache.
func (e *Extractor) ExtractText(text string) ([]Module, error) {
	return ParseText(text)
}

// IsVerilogFile identifies a file as Verilog by its extension.
func IsVerilogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".v", ".vlog":
		return true
	}
	return false
}

// IsArrayType reports whether a composite data type carries vector
// dimensions, e.g. "wire [7:0]".
func IsArrayType(dataType string) bool {
	return strings.Contains(dataType, "[")
}
