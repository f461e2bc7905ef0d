package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterTablesByFiles(t *testing.T) {
	tables := BuildTables(sampleInput())

	filtered := FilterTablesByFiles(tables, map[string]bool{"top.v": true})

	assert.Len(t, filtered.Files, 1)
	assert.Len(t, filtered.Modules, 1)
	assert.Equal(t, "top", filtered.Modules[0].Name)
	assert.Len(t, filtered.Ports, 2)
	assert.Len(t, filtered.Instances, 1)
	assert.Len(t, filtered.Connections, 2)

	// Sections follow their module's file.
	assert.Len(t, filtered.Sections, 1)

	other := FilterTablesByFiles(tables, map[string]bool{"counter.v": true})
	assert.Equal(t, "counter", other.Modules[0].Name)
	assert.Empty(t, other.Ports)
	assert.Empty(t, other.Sections)
}

func TestFilterTablesByFilesEmptySet(t *testing.T) {
	tables := BuildTables(sampleInput())

	filtered := FilterTablesByFiles(tables, nil)

	assert.Empty(t, filtered.Files)
	assert.Empty(t, filtered.Modules)
	assert.NotNil(t, filtered.Modules)
}

func TestFilterDeltaByFiles(t *testing.T) {
	prev := Tables{}
	next := BuildTables(sampleInput())
	delta := ComputeDelta(prev, next)

	filtered := FilterDeltaByFiles(delta, map[string]bool{"counter.v": true})

	assert.Len(t, filtered.Added.Modules, 1)
	assert.Equal(t, "counter", filtered.Added.Modules[0].Name)
	assert.Empty(t, filtered.Removed.Modules)
}
