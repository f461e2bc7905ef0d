package facts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/verilog-doc/internal/extractor"
)

func sampleInput() []FileModules {
	return []FileModules{
		{
			File: "top.v",
			Modules: []extractor.Module{
				{
					Name: "top",
					Desc: "Top level.",
					Ports: []extractor.Port{
						{Name: "clk", Mode: "input", DataType: "wire", Desc: "Clock"},
						{Name: "q", Mode: "output", DataType: "reg [7:0]"},
					},
					Parameters: []extractor.Parameter{
						{Name: "WIDTH", Mode: "in", DataType: "wire", DefaultValue: "8"},
					},
					Sections: map[string][]string{
						"Control": {"clk"},
					},
					Submodules: []extractor.SubModule{
						{
							ModuleType:   "counter",
							InstanceName: "c0",
							Connections:  map[string]string{"clk": "clk", "count": "q"},
						},
					},
				},
			},
		},
		{
			File: "counter.v",
			Modules: []extractor.Module{
				{Name: "counter", Submodules: []extractor.SubModule{}},
			},
		},
	}
}

func TestBuildTables(t *testing.T) {
	tables := BuildTables(sampleInput())

	assert.Equal(t, []FileRow{
		{Path: "top.v", ModuleCount: 1},
		{Path: "counter.v", ModuleCount: 1},
	}, tables.Files)

	assert.Equal(t, []ModuleRow{
		{Name: "top", File: "top.v", Desc: "Top level."},
		{Name: "counter", File: "counter.v"},
	}, tables.Modules)

	wantPorts := []PortRow{
		{Module: "top", Name: "clk", Mode: "input", Type: "wire", Desc: "Clock", File: "top.v"},
		{Module: "top", Name: "q", Mode: "output", Type: "reg [7:0]", File: "top.v"},
	}
	if diff := cmp.Diff(wantPorts, tables.Ports); diff != "" {
		t.Errorf("ports mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []ParameterRow{
		{Module: "top", Name: "WIDTH", Type: "wire", Default: "8", File: "top.v"},
	}, tables.Parameters)

	assert.Equal(t, []InstanceRow{
		{Module: "top", Name: "c0", Target: "counter", File: "top.v"},
	}, tables.Instances)

	// Connection rows are sorted by formal port name.
	assert.Equal(t, []ConnectionRow{
		{Module: "top", Instance: "c0", Port: "clk", Expr: "clk", File: "top.v"},
		{Module: "top", Instance: "c0", Port: "count", Expr: "q", File: "top.v"},
	}, tables.Connections)

	assert.Equal(t, []SectionRow{
		{Module: "top", Name: "Control", Ports: []string{"clk"}},
	}, tables.Sections)
}

func TestBuildTablesEmptyInputHasNonNilTables(t *testing.T) {
	tables := BuildTables(nil)

	require.NotNil(t, tables.Files)
	require.NotNil(t, tables.Modules)
	require.NotNil(t, tables.Ports)
	require.NotNil(t, tables.Parameters)
	require.NotNil(t, tables.Instances)
	require.NotNil(t, tables.Connections)
	require.NotNil(t, tables.Sections)
}

func TestSummarize(t *testing.T) {
	stats := Summarize(BuildTables(sampleInput()))

	assert.Equal(t, Stats{
		Files:      2,
		Modules:    2,
		Ports:      2,
		Parameters: 1,
		Instances:  1,
	}, stats)
}
