// Package facts flattens extracted module records into a relational
// model: one table per record kind, with flat rows that serialize
// cleanly to JSON for downstream documentation and diagram tools.
package facts

import (
	"sort"

	"github.com/robert-at-pretension-io/verilog-doc/internal/extractor"
)

// FileModules pairs a source file with the modules extracted from it.
type FileModules struct {
	File    string
	Modules []extractor.Module
}

// Tables is the relational fact model. Each slice is a relation with
// flat rows; slices are never nil so the JSON output always carries
// every table.
type Tables struct {
	Files       []FileRow       `json:"files"`
	Modules     []ModuleRow     `json:"modules"`
	Ports       []PortRow       `json:"ports"`
	Parameters  []ParameterRow  `json:"parameters"`
	Instances   []InstanceRow   `json:"instances"`
	Connections []ConnectionRow `json:"connections"`
	Sections    []SectionRow    `json:"sections"`
}

type FileRow struct {
	Path        string `json:"path"`
	ModuleCount int    `json:"module_count"`
}

type ModuleRow struct {
	Name string `json:"name"`
	File string `json:"file"`
	Desc string `json:"desc,omitempty"`
}

type PortRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Mode   string `json:"mode"`
	Type   string `json:"type"`
	Desc   string `json:"desc,omitempty"`
	File   string `json:"file"`
}

type ParameterRow struct {
	Module  string `json:"module"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default,omitempty"`
	Desc    string `json:"desc,omitempty"`
	File    string `json:"file"`
}

type InstanceRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Target string `json:"target"`
	File   string `json:"file"`
}

type ConnectionRow struct {
	Module   string `json:"module"`
	Instance string `json:"instance"`
	Port     string `json:"port"`
	Expr     string `json:"expr"`
	File     string `json:"file"`
}

type SectionRow struct {
	Module string   `json:"module"`
	Name   string   `json:"name"`
	Ports  []string `json:"ports"`
}

// BuildTables converts per-file module lists into the relational model.
// Row order follows the input file order and, within a file, the
// declaration order of the extracted records. Connection and section
// rows are sorted by name for a stable serialization.
func BuildTables(files []FileModules) Tables {
	tables := emptyTables()

	for _, f := range files {
		tables.Files = append(tables.Files, FileRow{
			Path:        f.File,
			ModuleCount: len(f.Modules),
		})

		for _, m := range f.Modules {
			tables.Modules = append(tables.Modules, ModuleRow{
				Name: m.Name,
				File: f.File,
				Desc: m.Desc,
			})

			for _, p := range m.Ports {
				tables.Ports = append(tables.Ports, PortRow{
					Module: m.Name,
					Name:   p.Name,
					Mode:   p.Mode,
					Type:   p.DataType,
					Desc:   p.Desc,
					File:   f.File,
				})
			}

			for _, p := range m.Parameters {
				tables.Parameters = append(tables.Parameters, ParameterRow{
					Module:  m.Name,
					Name:    p.Name,
					Type:    p.DataType,
					Default: p.DefaultValue,
					Desc:    p.Desc,
					File:    f.File,
				})
			}

			for _, s := range m.Submodules {
				tables.Instances = append(tables.Instances, InstanceRow{
					Module: m.Name,
					Name:   s.InstanceName,
					Target: s.ModuleType,
					File:   f.File,
				})
				for _, port := range sortedKeys(s.Connections) {
					tables.Connections = append(tables.Connections, ConnectionRow{
						Module:   m.Name,
						Instance: s.InstanceName,
						Port:     port,
						Expr:     s.Connections[port],
						File:     f.File,
					})
				}
			}

			for _, name := range sortedSliceKeys(m.Sections) {
				tables.Sections = append(tables.Sections, SectionRow{
					Module: m.Name,
					Name:   name,
					Ports:  m.Sections[name],
				})
			}
		}
	}

	return tables
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSliceKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emptyTables() Tables {
	return Tables{
		Files:       []FileRow{},
		Modules:     []ModuleRow{},
		Ports:       []PortRow{},
		Parameters:  []ParameterRow{},
		Instances:   []InstanceRow{},
		Connections: []ConnectionRow{},
		Sections:    []SectionRow{},
	}
}

// Stats summarizes table sizes for progress reporting.
type Stats struct {
	Files      int `json:"files"`
	Modules    int `json:"modules"`
	Ports      int `json:"ports"`
	Parameters int `json:"parameters"`
	Instances  int `json:"instances"`
}

// Summarize returns aggregate counts over the tables.
func Summarize(t Tables) Stats {
	return Stats{
		Files:      len(t.Files),
		Modules:    len(t.Modules),
		Ports:      len(t.Ports),
		Parameters: len(t.Parameters),
		Instances:  len(t.Instances),
	}
}
