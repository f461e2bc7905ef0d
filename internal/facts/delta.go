package facts

import (
	"strconv"
	"strings"
)

// Delta captures added and removed fact rows between two snapshots.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between two
// snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

func diffTables(from, to Tables) Tables {
	out := emptyTables()

	out.Files = diffRows(from.Files, to.Files, func(r FileRow) string {
		return r.Path + "|" + strconv.Itoa(r.ModuleCount)
	})
	out.Modules = diffRows(from.Modules, to.Modules, func(r ModuleRow) string {
		return r.Name + "|" + r.File + "|" + r.Desc
	})
	out.Ports = diffRows(from.Ports, to.Ports, func(r PortRow) string {
		return r.Module + "|" + r.Name + "|" + r.Mode + "|" + r.Type + "|" + r.Desc + "|" + r.File
	})
	out.Parameters = diffRows(from.Parameters, to.Parameters, func(r ParameterRow) string {
		return r.Module + "|" + r.Name + "|" + r.Type + "|" + r.Default + "|" + r.Desc + "|" + r.File
	})
	out.Instances = diffRows(from.Instances, to.Instances, func(r InstanceRow) string {
		return r.Module + "|" + r.Name + "|" + r.Target + "|" + r.File
	})
	out.Connections = diffRows(from.Connections, to.Connections, func(r ConnectionRow) string {
		return r.Module + "|" + r.Instance + "|" + r.Port + "|" + r.Expr + "|" + r.File
	})
	out.Sections = diffRows(from.Sections, to.Sections, func(r SectionRow) string {
		return r.Module + "|" + r.Name + "|" + strings.Join(r.Ports, ",")
	})

	return out
}

func diffRows[T any](from, to []T, key func(T) string) []T {
	fromSet := make(map[string]bool, len(from))
	for _, row := range from {
		fromSet[key(row)] = true
	}
	diff := []T{}
	for _, row := range to {
		if !fromSet[key(row)] {
			diff = append(diff, row)
		}
	}
	return diff
}
