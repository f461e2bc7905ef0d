package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDeltaEmptyOnIdenticalSnapshots(t *testing.T) {
	tables := BuildTables(sampleInput())

	delta := ComputeDelta(tables, tables)

	assert.Empty(t, delta.Added.Modules)
	assert.Empty(t, delta.Added.Ports)
	assert.Empty(t, delta.Removed.Modules)
	assert.Empty(t, delta.Removed.Ports)
}

func TestComputeDeltaDetectsAddedAndRemovedRows(t *testing.T) {
	prev := Tables{
		Modules: []ModuleRow{
			{Name: "alu", File: "alu.v"},
			{Name: "fpu", File: "fpu.v"},
		},
		Ports: []PortRow{
			{Module: "alu", Name: "clk", Mode: "input", Type: "wire", File: "alu.v"},
		},
	}
	next := Tables{
		Modules: []ModuleRow{
			{Name: "alu", File: "alu.v"},
			{Name: "mmu", File: "mmu.v"},
		},
		Ports: []PortRow{
			{Module: "alu", Name: "clk", Mode: "input", Type: "wire", File: "alu.v"},
			{Module: "mmu", Name: "addr", Mode: "input", Type: "wire [31:0]", File: "mmu.v"},
		},
	}

	delta := ComputeDelta(prev, next)

	assert.Equal(t, []ModuleRow{{Name: "mmu", File: "mmu.v"}}, delta.Added.Modules)
	assert.Equal(t, []ModuleRow{{Name: "fpu", File: "fpu.v"}}, delta.Removed.Modules)
	assert.Len(t, delta.Added.Ports, 1)
	assert.Empty(t, delta.Removed.Ports)
}

func TestComputeDeltaSeesFieldChangesAsReplaceRows(t *testing.T) {
	prev := Tables{
		Ports: []PortRow{
			{Module: "m", Name: "data", Mode: "input", Type: "wire", File: "m.v"},
		},
	}
	next := Tables{
		Ports: []PortRow{
			{Module: "m", Name: "data", Mode: "output", Type: "reg [7:0]", File: "m.v"},
		},
	}

	delta := ComputeDelta(prev, next)

	assert.Len(t, delta.Added.Ports, 1)
	assert.Len(t, delta.Removed.Ports, 1)
	assert.Equal(t, "output", delta.Added.Ports[0].Mode)
	assert.Equal(t, "input", delta.Removed.Ports[0].Mode)
}

func TestComputeDeltaTablesAreNeverNil(t *testing.T) {
	delta := ComputeDelta(Tables{}, Tables{})

	assert.NotNil(t, delta.Added.Files)
	assert.NotNil(t, delta.Added.Sections)
	assert.NotNil(t, delta.Removed.Files)
	assert.NotNil(t, delta.Removed.Sections)
}
