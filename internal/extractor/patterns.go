package extractor

import (
	"github.com/robert-at-pretension-io/verilog-doc/internal/lexer"
)

// Action names emitted by the Verilog rule table. The builder in
// parser.go interprets these; it never sees the patterns themselves.
const (
	actBlockComment      = "block_comment"
	actEndComment        = "end_comment"
	actComment           = "comment"
	actModule            = "module"
	actEndModule         = "end_module"
	actParameterStart    = "parameter_start"
	actParamItemValue    = "param_item_with_value"
	actParamItem         = "param_item"
	actPortStart         = "module_port_start"
	actPortItem          = "port_param"
	actSectionMeta       = "section_meta"
	actMetacomment       = "metacomment"
	actSubmoduleParams   = "submodule_param_start"
	actSubmoduleInstance = "submodule_param_end"
	actSubmoduleStart    = "submodule_start"
	actEndSubmodule      = "end_submodule"
	actConnection        = "submodule_connection"
)

const rootState = "root"

// Net types that may prefix a port declaration.
const netTypes = `reg|supply0|supply1|tri|triand|trior|tri0|tri1|wire|wand|wor|logic`

// verilogTokens is the rule table for the Verilog dialect. Rule order
// matters: the first match at the cursor wins, so endmodule must come
// before the submodule instantiation patterns and section markers
// before plain metacomments.
//
// The engine treats an unmatched position as a fatal lexical error, so
// everything the parser deliberately skips (whitespace, module body
// statements, generate regions) is expressed as silent rules. The
// trailing `\w+` rule swallows identifiers whole, which keeps keyword
// patterns from matching in the middle of a longer word. Item states
// end with a single-byte skip so expression tails the item patterns
// cannot take (operator chains, nested parentheses) are passed over
// instead of failing the scan.
var verilogTokens = lexer.States{
	"root": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//#+\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`//.*(?:\n|\z)`, "", lexer.Stay()),
		lexer.NewRule(`\bmodule\s*(\w+)\s*`, actModule, lexer.Push("module")),
		lexer.NewRule(`\w+`, "", lexer.Stay()),
		lexer.NewRule(`.`, "", lexer.Stay()),
	},
	"module": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//#\s*\{\{(.*?)\}\}\s*(?:\n|\z)`, actSectionMeta, lexer.Stay()),
		lexer.NewRule(`//#+\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`//\s*(.*?)\s*(?:\n|\z)`, actComment, lexer.Stay()),
		lexer.NewRule(`\bendmodule\b`, actEndModule, lexer.Pop()),
		lexer.NewRule(`\bparameter\s+(?:(signed|integer|realtime|real|time)\s+)?(\[[^]]+\])?`,
			actParameterStart, lexer.Push("parameters")),
		lexer.NewRule(`\b(input|inout|output)\s+(?:(`+netTypes+`)\s+)?(?:(signed)\s+)?(\[[^]]+\])?`,
			actPortStart, lexer.Push("module_port")),
		lexer.NewRule(`\b(?:generate|endgenerate)\b`, "", lexer.Stay()),
		lexer.NewRule(`\b(\w+)\s+#\s*\(`, actSubmoduleParams, lexer.Push("submodule_params")),
		lexer.NewRule(`\b(\w+)\s+(\w+)\s*\(`, actSubmoduleStart, lexer.Push("submodule")),
		lexer.NewRule(`\w+`, "", lexer.Stay()),
		lexer.NewRule(`.`, "", lexer.Stay()),
	},
	"parameters": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//#\s*\{\{(.*?)\}\}\s*(?:\n|\z)`, actSectionMeta, lexer.Stay()),
		lexer.NewRule(`//#+\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`//\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`\bparameter\s+(?:(signed|integer|realtime|real|time)\s+)?(\[[^]]+\])?`,
			actParameterStart, lexer.Stay()),
		lexer.NewRule(`(\w+)\s*=\s*([^,;\s]+)`, actParamItemValue, lexer.Stay()),
		lexer.NewRule(`(\w+)[^),;]*`, actParamItem, lexer.Stay()),
		lexer.NewRule(`,`, "", lexer.Stay()),
		lexer.NewRule(`[);]`, "", lexer.Pop()),
		lexer.NewRule(`.`, "", lexer.Stay()),
	},
	"module_port": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//#\s*\{\{(.*?)\}\}\s*(?:\n|\z)`, actSectionMeta, lexer.Stay()),
		lexer.NewRule(`//#+\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`//\s*(.*?)\s*(?:\n|\z)`, actMetacomment, lexer.Stay()),
		lexer.NewRule(`\b(input|inout|output)\s+(?:(`+netTypes+`)\s+)?(?:(signed)\s+)?(\[[^]]+\])?`,
			actPortStart, lexer.Stay()),
		lexer.NewRule(`(\w+)\s*,?`, actPortItem, lexer.Stay()),
		lexer.NewRule(`,`, "", lexer.Stay()),
		lexer.NewRule(`[);]`, "", lexer.Pop()),
	},
	"submodule_params": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//.*(?:\n|\z)`, "", lexer.Stay()),
		lexer.NewRule(`\)\s*(\w+)\s*\(`, actSubmoduleInstance, lexer.Stay()),
		lexer.NewRule(`\)\s*;`, actEndSubmodule, lexer.Pop()),
		lexer.NewRule(`\.(\w+)\s*\(\s*([^()]*?)\s*\)`, actConnection, lexer.Stay()),
		lexer.NewRule(`\.[^,)]+`, "", lexer.Stay()),
		lexer.NewRule(`,`, "", lexer.Stay()),
		lexer.NewRule(`\)`, "", lexer.Stay()),
		lexer.NewRule(`.`, "", lexer.Stay()),
	},
	"submodule": {
		lexer.NewRule(`\s+`, "", lexer.Stay()),
		lexer.NewRule(`/\*`, actBlockComment, lexer.Push("block_comment")),
		lexer.NewRule(`//.*(?:\n|\z)`, "", lexer.Stay()),
		lexer.NewRule(`\)\s*;`, actEndSubmodule, lexer.Pop()),
		lexer.NewRule(`\.(\w+)\s*\(\s*([^()]*?)\s*\)`, actConnection, lexer.Stay()),
		lexer.NewRule(`\.[^,)]+`, "", lexer.Stay()),
		lexer.NewRule(`,`, "", lexer.Stay()),
		lexer.NewRule(`\)`, "", lexer.Stay()),
		lexer.NewRule(`.`, "", lexer.Stay()),
	},
	"block_comment": {
		lexer.NewRule(`\*/`, actEndComment, lexer.Pop()),
		lexer.NewRule(`[^*]+`, "", lexer.Stay()),
		lexer.NewRule(`\*`, "", lexer.Stay()),
	},
}

// NewScanner returns a token scanner over Verilog source text.
func NewScanner(text string) *lexer.Scanner {
	return lexer.NewScanner(verilogTokens, rootState, text)
}
