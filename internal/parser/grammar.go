package parser

import (
	"github.com/hdldoc/govhdl/internal/lexer"
)

// Action tags emitted by the grammar. Each tag corresponds to exactly one
// rule; the interpreter switch in parser.go handles all of them.
const (
	actPackage             = "package"
	actFunction            = "function"
	actProcedure           = "procedure"
	actParam               = "param"
	actParamType           = "param_type"
	actParamDefault        = "param_default"
	actEndSubprogram       = "end_subprogram"
	actComponent           = "component"
	actGenericParam        = "generic_param"
	actGenericParamType    = "generic_param_type"
	actGenericParamDefault = "generic_param_default"
	actEndGeneric          = "end_generic"
	actPortParam           = "port_param"
	actPortParamType       = "port_param_type"
	actPortParamDefault    = "port_param_default"
	actPortArrayParamType  = "port_array_param_type"
	actArrayRangeEnd       = "array_range_end"
	actEndPort             = "end_port"
	actEndComponent        = "end_component"
	actType                = "type"
	actArrayType           = "array_type"
	actFileType            = "file_type"
	actAccessType          = "access_type"
	actRecordType          = "record_type"
	actRangeType           = "range_type"
	actEnumType            = "enum_type"
	actIncompleteType      = "incomplete_type"
	actSubtype             = "subtype"
	actConstant            = "constant"
	actMetacomment         = "metacomment"
	actSectionMeta         = "section_meta"
)

// Grammar state names beyond the lexer's root.
const (
	statePackage          lexer.StateName = "package"
	stateTypeDecl         lexer.StateName = "type_decl"
	stateParamList        lexer.StateName = "param_list"
	stateParamType        lexer.StateName = "param_type"
	stateSimpleFunc       lexer.StateName = "simple_func"
	stateComponent        lexer.StateName = "component"
	stateGenericList      lexer.StateName = "generic_list"
	stateGenericParamType lexer.StateName = "generic_param_type"
	statePortList         lexer.StateName = "port_list"
	statePortParamType    lexer.StateName = "port_param_type"
	stateArrayRange       lexer.StateName = "array_range"
	stateNestedParens     lexer.StateName = "nested_parens"
)

// skipAny consumes one character the state's rules do not recognize.
// Every state carries it as its final rule: the scanned text is free-form
// VHDL of which this grammar only understands declarations, so anything
// between them is discarded one character at a time. The lexer engine
// itself never skips, so a state written without this rule fails loudly.
var skipAny = lexer.Rule{Pattern: `(?s).`, Op: lexer.Stay()}

// ci marks a pattern case-insensitive. VHDL keywords and identifiers are
// case-insensitive.
func ci(pattern string) string { return `(?i)` + pattern }

// Grammar returns the lexical table for the VHDL declaration subset.
// Rule order within a state matters: more specific forms (function with a
// parameter list) come before more general ones (bare function).
func Grammar() lexer.Table {
	return lexer.Table{
		lexer.RootState: {
			{Pattern: ci(`package\s+(\w+)\s+is`), Action: actPackage, Op: lexer.Push(statePackage)},
			{Pattern: ci(`function\s+(\w+|"[^"]+")\s*\(`), Action: actFunction, Op: lexer.Push(stateParamList)},
			{Pattern: ci(`procedure\s+(\w+)\s*\(`), Action: actProcedure, Op: lexer.Push(stateParamList)},
			{Pattern: ci(`function\s+(\w+)`), Action: actFunction, Op: lexer.Push(stateSimpleFunc)},
			{Pattern: ci(`component\s+(\w+)\s*is`), Action: actComponent, Op: lexer.Push(stateComponent)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		statePackage: {
			{Pattern: ci(`function\s+(\w+|"[^"]+")\s*\(`), Action: actFunction, Op: lexer.Push(stateParamList)},
			{Pattern: ci(`procedure\s+(\w+)\s*\(`), Action: actProcedure, Op: lexer.Push(stateParamList)},
			{Pattern: ci(`function\s+(\w+)`), Action: actFunction, Op: lexer.Push(stateSimpleFunc)},
			{Pattern: ci(`component\s+(\w+)\s*is`), Action: actComponent, Op: lexer.Push(stateComponent)},
			{Pattern: ci(`subtype\s+(\w+)\s+is\s+(\w+)`), Action: actSubtype, Op: lexer.Stay()},
			{Pattern: ci(`constant\s+(\w+)\s+:\s+(\w+)`), Action: actConstant, Op: lexer.Stay()},
			{Pattern: ci(`type\s+(\w+)\s*is`), Action: actType, Op: lexer.Push(stateTypeDecl)},
			{Pattern: ci(`end\s+package`), Op: lexer.Pop(1)},
			{Pattern: `--#+(.*)\n`, Action: actMetacomment, Op: lexer.Stay()},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateTypeDecl: {
			{Pattern: ci(`array`), Action: actArrayType, Op: lexer.Pop(1)},
			{Pattern: ci(`file`), Action: actFileType, Op: lexer.Pop(1)},
			{Pattern: ci(`access`), Action: actAccessType, Op: lexer.Pop(1)},
			{Pattern: ci(`record`), Action: actRecordType, Op: lexer.Pop(1)},
			{Pattern: ci(`range`), Action: actRangeType, Op: lexer.Pop(1)},
			{Pattern: `\(`, Action: actEnumType, Op: lexer.Pop(1)},
			{Pattern: `;`, Action: actIncompleteType, Op: lexer.Pop(1)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateParamList: {
			{Pattern: ci(`\s*((?:variable|signal|constant|file)\s+)?(\w+)\s*`), Action: actParam, Op: lexer.Stay()},
			{Pattern: `\s*,\s*`, Op: lexer.Stay()},
			{Pattern: `\s*:\s*`, Op: lexer.Push(stateParamType)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateParamType: {
			{Pattern: ci(`\s*((?:in|out|inout|buffer)\s+)?(\w+)\s*`), Action: actParamType, Op: lexer.Stay()},
			{Pattern: `\s*;\s*`, Op: lexer.Pop(1)},
			{Pattern: ci(`\s*:=\s*('.'|[^\s;)]+)`), Action: actParamDefault, Op: lexer.Stay()},
			{Pattern: ci(`\)\s*(?:return\s+(\w+)\s*)?;`), Action: actEndSubprogram, Op: lexer.Pop(2)},
			{Pattern: ci(`\)\s*(?:return\s+(\w+)\s*)?is`), Op: lexer.Pop(2)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateSimpleFunc: {
			{Pattern: ci(`\s+return\s+(\w+)\s*;`), Action: actEndSubprogram, Op: lexer.Pop(1)},
			{Pattern: ci(`\s+return\s+(\w+)\s+is`), Op: lexer.Pop(1)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateComponent: {
			{Pattern: ci(`generic\s*\(`), Op: lexer.Push(stateGenericList)},
			{Pattern: ci(`port\s*\(`), Op: lexer.Push(statePortList)},
			{Pattern: ci(`end\s+component\s*;`), Action: actEndComponent, Op: lexer.Pop(1)},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateGenericList: {
			{Pattern: `\s*(\w+)\s*`, Action: actGenericParam, Op: lexer.Stay()},
			{Pattern: `\s*,\s*`, Op: lexer.Stay()},
			{Pattern: `\s*:\s*`, Op: lexer.Push(stateGenericParamType)},
			{Pattern: `--#+(.*)\n`, Action: actMetacomment, Op: lexer.Stay()},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateGenericParamType: {
			{Pattern: `\s*(\w+)\s*`, Action: actGenericParamType, Op: lexer.Stay()},
			{Pattern: `\s*;\s*`, Op: lexer.Pop(1)},
			{Pattern: `\s*:=\s*([\w']+)`, Action: actGenericParamDefault, Op: lexer.Stay()},
			{Pattern: `\)\s*;`, Action: actEndGeneric, Op: lexer.Pop(2)},
			{Pattern: `--#+(.*)\n`, Action: actMetacomment, Op: lexer.Stay()},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		statePortList: {
			{Pattern: `\s*(\w+)\s*`, Action: actPortParam, Op: lexer.Stay()},
			{Pattern: `\s*,\s*`, Op: lexer.Stay()},
			{Pattern: `\s*:\s*`, Op: lexer.Push(statePortParamType)},
			{Pattern: `--#\s*\{\{(.*)\}\}\n`, Action: actSectionMeta, Op: lexer.Stay()},
			{Pattern: `--#+(.*)\n`, Action: actMetacomment, Op: lexer.Stay()},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		statePortParamType: {
			{Pattern: ci(`\s*(in|out|inout|buffer)\s+(\w+)\s*\(`), Action: actPortArrayParamType, Op: lexer.Push(stateArrayRange)},
			{Pattern: ci(`\s*(in|out|inout|buffer)\s+(\w+)\s*`), Action: actPortParamType, Op: lexer.Stay()},
			{Pattern: `\s*;\s*`, Op: lexer.Pop(1)},
			{Pattern: `\s*:=\s*([\w']+)`, Action: actPortParamDefault, Op: lexer.Stay()},
			{Pattern: `\)\s*;`, Action: actEndPort, Op: lexer.Pop(2)},
			{Pattern: `--#+(.*)\n`, Action: actMetacomment, Op: lexer.Stay()},
			{Pattern: `--.*\n`, Op: lexer.Stay()},
			skipAny,
		},
		stateArrayRange: {
			{Pattern: `\(`, Op: lexer.Push(stateNestedParens)},
			{Pattern: `\)`, Action: actArrayRangeEnd, Op: lexer.Pop(1)},
			skipAny,
		},
		stateNestedParens: {
			{Pattern: `\(`, Op: lexer.Push(stateNestedParens)},
			{Pattern: `\)`, Op: lexer.Pop(1)},
			skipAny,
		},
	}
}
