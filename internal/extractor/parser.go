package extractor

import (
	"fmt"
	"strings"
)

// Module is a finalized Verilog module record. Once returned by the
// parser it is never mutated again.
type Module struct {
	Name       string              `json:"name"`
	Ports      []Port              `json:"ports"`
	Parameters []Parameter         `json:"parameters"`
	Sections   map[string][]string `json:"sections,omitempty"`
	Submodules []SubModule         `json:"submodules"`
	Desc       string              `json:"desc,omitempty"`
}

// Port is a named signal in a module's interface.
type Port struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	DataType string `json:"data_type"`
	Desc     string `json:"desc,omitempty"`
}

// Parameter is a compile-time configurable value of a module. Mode is
// always "in" for Verilog parameters.
type Parameter struct {
	Name         string `json:"name"`
	Mode         string `json:"mode"`
	DataType     string `json:"data_type"`
	DefaultValue string `json:"default_value,omitempty"`
	Desc         string `json:"desc,omitempty"`
}

// SubModule is an instantiation of one module type inside another.
// Connections maps formal port/parameter names to their verbatim
// connection expressions.
type SubModule struct {
	ModuleType   string            `json:"module_type"`
	InstanceName string            `json:"instance_name"`
	Connections  map[string]string `json:"connections"`
	Desc         string            `json:"desc,omitempty"`
}

// StructuralError reports input that ended inside an unterminated
// construct (block comment, module, submodule instantiation).
type StructuralError struct {
	Offset int
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("unterminated input at offset %d: %s", e.Offset, e.Reason)
}

const (
	defaultPortMode = "input"
	defaultDataType = "wire"
)

type sectionMark struct {
	index int
	label string
}

// builder interprets the token stream. All per-module accumulators live
// here and are reset at every module open and close; finalized modules
// are value copies, so nothing the builder does later can touch them.
type builder struct {
	modules []Module

	open bool
	name string

	mode  string
	ptype string

	ports     []*Port
	portIndex map[string]int
	generics  []*Parameter

	sections   []sectionMark
	submodules []SubModule
	current    *SubModule

	metacomments []string
	lastDesc     *string
}

func newBuilder() *builder {
	b := &builder{}
	b.resetModule("")
	b.open = false
	return b
}

// resetModule clears every per-module accumulator and arms the default
// port mode and data type, which also covers dialect oddities where a
// port or parameter item arrives without a preceding group opener.
func (b *builder) resetModule(name string) {
	b.open = true
	b.name = name
	b.mode = defaultPortMode
	b.ptype = defaultDataType
	b.ports = nil
	b.portIndex = make(map[string]int)
	b.generics = nil
	b.sections = nil
	b.submodules = nil
	b.current = nil
	b.lastDesc = nil
}

// apply interprets one token. Inconsistencies between the action and
// the builder's accumulator state are fatal rather than dropped, so a
// module record can never silently omit data.
func (b *builder) apply(pos int, action string, groups []string) error {
	switch action {
	case actMetacomment:
		if b.lastDesc == nil {
			b.metacomments = append(b.metacomments, groups[0])
		} else {
			*b.lastDesc = groups[0]
		}

	case actComment:
		// Plain body comments describe the module only while it is
		// still empty; once an item can take a description they are
		// dropped rather than overwriting it.
		if b.lastDesc == nil {
			b.metacomments = append(b.metacomments, groups[0])
		}

	case actSectionMeta:
		b.sections = append(b.sections, sectionMark{index: len(b.ports), label: groups[0]})

	case actModule:
		// Metacomments buffered before this point become the new
		// module's description at close time.
		b.resetModule(groups[0])

	case actParameterStart:
		b.ptype = composeType(defaultDataType, groups[0], "", groups[1])

	case actParamItemValue:
		p := &Parameter{
			Name:         groups[0],
			Mode:         "in",
			DataType:     b.ptype,
			DefaultValue: strings.TrimSpace(groups[1]),
		}
		b.generics = append(b.generics, p)
		b.lastDesc = &p.Desc

	case actParamItem:
		name := strings.TrimSpace(groups[0])
		if name == "" || b.hasParameter(name) {
			return nil
		}
		p := &Parameter{Name: name, Mode: "in", DataType: b.ptype}
		b.generics = append(b.generics, p)
		b.lastDesc = &p.Desc

	case actPortStart:
		b.mode = groups[0]
		b.ptype = composeType(defaultDataType, groups[1], groups[2], groups[3])

	case actPortItem:
		b.addPort(groups[0])

	case actSubmoduleParams:
		b.current = &SubModule{ModuleType: groups[0], Connections: map[string]string{}}

	case actSubmoduleInstance:
		if b.current == nil {
			return fmt.Errorf("instance name at offset %d without an open submodule", pos)
		}
		b.current.InstanceName = groups[0]

	case actSubmoduleStart:
		b.current = &SubModule{
			ModuleType:   groups[0],
			InstanceName: groups[1],
			Connections:  map[string]string{},
		}

	case actConnection:
		if b.current == nil {
			return fmt.Errorf("port connection at offset %d without an open submodule", pos)
		}
		b.current.Connections[groups[0]] = groups[1]

	case actEndSubmodule:
		if b.current == nil {
			return fmt.Errorf("submodule close at offset %d without an open submodule", pos)
		}
		b.submodules = append(b.submodules, *b.current)
		b.current = nil

	case actEndModule:
		b.closeModule()

	case actBlockComment, actEndComment:
		// Comment boundaries carry no documentation content.
	}
	return nil
}

// composeType assembles a composite type string from an optional net
// type keyword, signedness keyword and bit-range suffix. Absent parts
// are empty strings; with all parts absent the default stands alone.
func composeType(def, netType, signed, vecRange string) string {
	t := def
	if netType != "" {
		t = netType
	}
	if signed != "" {
		t += " " + signed
	}
	if vecRange != "" {
		t += " " + vecRange
	}
	return t
}

// addPort creates the port or, for ports declared twice (ANSI header
// plus body declaration), updates the existing record in place so the
// declaration order is kept.
func (b *builder) addPort(name string) {
	if i, ok := b.portIndex[name]; ok {
		p := b.ports[i]
		p.Mode = b.mode
		p.DataType = b.ptype
		b.lastDesc = &p.Desc
		return
	}
	p := &Port{Name: name, Mode: b.mode, DataType: b.ptype}
	b.portIndex[name] = len(b.ports)
	b.ports = append(b.ports, p)
	b.lastDesc = &p.Desc
}

func (b *builder) hasParameter(name string) bool {
	for _, p := range b.generics {
		if p.Name == name {
			return true
		}
	}
	return false
}

// closeModule resolves sections, copies the accumulated records into an
// immutable Module and appends it to the output, then clears all
// per-module state.
func (b *builder) closeModule() {
	m := Module{
		Name:       b.name,
		Ports:      make([]Port, len(b.ports)),
		Parameters: make([]Parameter, len(b.generics)),
		Submodules: b.submodules,
		Sections:   b.resolveSections(),
	}
	for i, p := range b.ports {
		m.Ports[i] = *p
	}
	for i, p := range b.generics {
		m.Parameters[i] = *p
	}
	if m.Submodules == nil {
		m.Submodules = []SubModule{}
	}
	if len(b.metacomments) > 0 {
		m.Desc = strings.Join(b.metacomments, "\n")
	}
	b.modules = append(b.modules, m)

	b.metacomments = nil
	b.resetModule("")
	b.open = false
}

// resolveSections turns the recorded break-points into named contiguous
// slices of the final port order. A marker at port count i claims the
// ports from i up to the next marker (or the end of the list); markers
// at or beyond the final port count are dropped.
func (b *builder) resolveSections() map[string][]string {
	if len(b.sections) == 0 {
		return nil
	}
	names := make([]string, len(b.ports))
	for i, p := range b.ports {
		names[i] = p.Name
	}
	sections := make(map[string][]string)
	for i, mark := range b.sections {
		if mark.index >= len(names) {
			continue
		}
		end := len(names)
		if i+1 < len(b.sections) && b.sections[i+1].index < end {
			end = b.sections[i+1].index
		}
		sections[mark.label] = names[mark.index:end]
	}
	return sections
}

// ParseText parses a buffer of Verilog source and returns the modules
// found, in source order. The whole input is rejected on the first
// lexical failure, on any unterminated construct, and on token
// orderings the builder cannot apply; there is no partial-result mode.
func ParseText(text string) ([]Module, error) {
	scan := NewScanner(text)
	b := newBuilder()
	for {
		tok, ok := scan.Next()
		if !ok {
			break
		}
		if err := b.apply(tok.Pos, tok.Action, tok.Groups); err != nil {
			return nil, err
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if scan.Depth() > 1 || b.open {
		reason := "module not closed"
		if scan.Depth() > 1 && !b.open {
			reason = "comment not closed"
		}
		return nil, &StructuralError{Offset: scan.Pos(), Reason: reason}
	}
	return b.modules, nil
}
