package facts

// FilterTablesByFiles returns a new Tables object containing only rows
// belonging to the provided file set. Section rows carry no file of
// their own; they follow their module's file.
func FilterTablesByFiles(tables Tables, files map[string]bool) Tables {
	out := emptyTables()
	if len(files) == 0 {
		return out
	}

	moduleFiles := make(map[string]string, len(tables.Modules))
	for _, row := range tables.Modules {
		moduleFiles[row.Name] = row.File
	}

	for _, row := range tables.Files {
		if files[row.Path] {
			out.Files = append(out.Files, row)
		}
	}
	for _, row := range tables.Modules {
		if files[row.File] {
			out.Modules = append(out.Modules, row)
		}
	}
	for _, row := range tables.Ports {
		if files[row.File] {
			out.Ports = append(out.Ports, row)
		}
	}
	for _, row := range tables.Parameters {
		if files[row.File] {
			out.Parameters = append(out.Parameters, row)
		}
	}
	for _, row := range tables.Instances {
		if files[row.File] {
			out.Instances = append(out.Instances, row)
		}
	}
	for _, row := range tables.Connections {
		if files[row.File] {
			out.Connections = append(out.Connections, row)
		}
	}
	for _, row := range tables.Sections {
		if files[moduleFiles[row.Module]] {
			out.Sections = append(out.Sections, row)
		}
	}

	return out
}

// FilterDeltaByFiles returns a new Delta containing only rows for the
// specified files.
func FilterDeltaByFiles(delta Delta, files map[string]bool) Delta {
	if len(files) == 0 {
		return Delta{Added: emptyTables(), Removed: emptyTables()}
	}
	return Delta{
		Added:   FilterTablesByFiles(delta.Added, files),
		Removed: FilterTablesByFiles(delta.Removed, files),
	}
}
