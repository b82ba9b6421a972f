// Package parser extracts declaration objects from VHDL source text.
//
// The parser drives the generic lexer engine with the grammar table in
// grammar.go and interprets the resulting action-tag stream into
// vhdl.Object values. It makes a single pass over the token events; the
// only state carried between events is the declaration currently being
// built. Parameters are staged untyped until their shared type annotation
// arrives (VHDL lists comma-separated names before the type), then
// committed as a group.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hdldoc/govhdl/internal/lexer"
	"github.com/hdldoc/govhdl/internal/types"
	"github.com/hdldoc/govhdl/vhdl"
)

// ContractError reports an action tag that fired against build state
// inconsistent with reaching that tag. It indicates a grammar/interpreter
// mismatch, not malformed input.
type ContractError struct {
	Action string
	Offset int
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("interpreter contract violation: action %q at offset %d", e.Action, e.Offset)
}

// Parser converts VHDL source text into documentation objects.
// A Parser is immutable after construction; each Parse call scans
// independently.
type Parser struct {
	machine *lexer.Machine
	types.Logger
}

// New compiles the VHDL grammar. Pass nil for logger to disable logging.
func New(logger *slog.Logger) (*Parser, error) {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	machine, err := lexer.NewMachine(Grammar(), lexLogger)
	if err != nil {
		return nil, err
	}
	return &Parser{machine: machine, Logger: types.Logger{L: logger}}, nil
}

// Parse scans text and returns the completed objects in source order.
// A construct left unterminated at end-of-input is truncated silently;
// input no grammar rule recognizes fails with *lexer.LexicalError.
func (p *Parser) Parse(text string) ([]vhdl.Object, error) {
	scan := p.machine.Run(text)
	st := buildState{}

	var objects []vhdl.Object
	for {
		tok, ok, err := scan.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		obj, err := st.apply(text, tok)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			objects = append(objects, obj)
		}
	}

	p.Log(slog.LevelDebug, "parse complete",
		slog.Int("bytes", len(text)),
		slog.Int("objects", len(objects)))
	return objects, nil
}

// buildState is the transient state of one parse. Completed objects are
// emitted from apply and never touched again; everything here is the
// in-progress construction.
type buildState struct {
	kind vhdl.Kind // variant being built, valid when open
	open bool
	name string

	typeName string // pending type declaration awaiting classification
	typeOpen bool

	metacomments []string // buffered until the next object is created

	staged    []vhdl.Parameter // names seen, type not yet known
	committed []vhdl.Parameter // finished subprogram parameters

	generics  []vhdl.Parameter
	ports     []vhdl.Parameter
	sections  map[int]string
	portCount int // ports declared so far, indexes section markers

	// target is the parameter list that most recently received a typed
	// group; metacomments attach to its last element and defaults
	// back-fill the whole group.
	target    *[]vhdl.Parameter
	targetLen int

	rangeMode  vhdl.Mode // remembered across an array-range expression
	rangeType  string
	rangeStart int
	rangeOpen  bool
}

func (b *buildState) apply(source string, tok lexer.Token) (vhdl.Object, error) {
	switch tok.Action {
	case actMetacomment:
		if b.target != nil && len(*b.target) > 0 {
			(*b.target)[len(*b.target)-1].Desc = tok.Groups[0]
		} else {
			b.metacomments = append(b.metacomments, tok.Groups[0])
		}

	case actSectionMeta:
		if b.sections == nil {
			b.sections = make(map[int]string)
		}
		b.sections[b.portCount] = tok.Groups[0]

	case actFunction:
		b.openDecl(vhdl.KindFunction, tok.Groups[0])
	case actProcedure:
		b.openDecl(vhdl.KindProcedure, tok.Groups[0])

	case actParam:
		// A typed group still staged means a ';' closed the previous
		// group; commit it before staging the next name. Untyped staged
		// names are comma-siblings awaiting the same type annotation.
		if len(b.staged) > 0 && b.staged[0].DataType != "" {
			b.committed = append(b.committed, b.staged...)
			b.staged = nil
		}
		b.staged = append(b.staged, vhdl.Parameter{Name: tok.Groups[1]})
	case actParamType:
		mode := vhdl.Mode(strings.ToLower(strings.TrimSpace(tok.Groups[0])))
		for i := range b.staged {
			b.staged[i].Mode = mode
			b.staged[i].DataType = tok.Groups[1]
		}
	case actParamDefault:
		for i := range b.staged {
			b.staged[i].Default = tok.Groups[0]
		}

	case actEndSubprogram:
		if !b.open || (b.kind != vhdl.KindFunction && b.kind != vhdl.KindProcedure) {
			return nil, contract(tok)
		}
		b.committed = append(b.committed, b.staged...)
		params := b.committed
		desc := b.takeMetacomments()

		var obj vhdl.Object
		if b.kind == vhdl.KindFunction {
			obj = vhdl.NewFunction(b.name, params, tok.Groups[0], desc)
		} else {
			obj = vhdl.NewProcedure(b.name, params, desc)
		}
		b.closeDecl()
		return obj, nil

	case actComponent:
		b.openDecl(vhdl.KindComponent, tok.Groups[0])
		b.generics = nil
		b.ports = nil
		b.sections = nil
		b.portCount = 0
		b.clearTarget()

	case actGenericParam:
		b.staged = append(b.staged, vhdl.Parameter{Name: tok.Groups[0]})
	case actGenericParamType:
		// Generics are always inputs; the grammar never captures a mode.
		b.flushTyped(&b.generics, vhdl.ModeIn, tok.Groups[0])
	case actGenericParamDefault:
		b.backfillDefault(tok.Groups[0])

	case actPortParam:
		b.staged = append(b.staged, vhdl.Parameter{Name: tok.Groups[0]})
		b.portCount++
	case actPortParamType:
		mode := vhdl.Mode(strings.ToLower(tok.Groups[0]))
		b.flushTyped(&b.ports, mode, tok.Groups[1])
	case actPortParamDefault:
		b.backfillDefault(tok.Groups[0])

	case actPortArrayParamType:
		b.rangeMode = vhdl.Mode(strings.ToLower(tok.Groups[0]))
		b.rangeType = tok.Groups[1]
		b.rangeStart = int(tok.Span.End) - 1 // offset of the opening paren
		b.rangeOpen = true
	case actArrayRangeEnd:
		if !b.rangeOpen {
			return nil, contract(tok)
		}
		// The literal range text, opening through closing paren inclusive.
		arange := source[b.rangeStart : int(tok.Span.Start)+1]
		b.flushTyped(&b.ports, b.rangeMode, b.rangeType+arange)
		b.rangeOpen = false

	case actEndGeneric, actEndPort:
		// List closed; the pop directives already unwound the states.

	case actEndComponent:
		if !b.open || b.kind != vhdl.KindComponent {
			return nil, contract(tok)
		}
		obj := vhdl.NewComponent(b.name, b.generics, b.ports, b.sections, b.takeMetacomments())
		b.generics = nil
		b.ports = nil
		b.sections = nil
		b.clearTarget()
		b.closeDecl()
		return obj, nil

	case actPackage:
		return vhdl.NewPackage(tok.Groups[0], b.takeMetacomments()), nil

	case actType:
		b.typeName = tok.Groups[0]
		b.typeOpen = true
	case actArrayType, actFileType, actAccessType, actRecordType,
		actRangeType, actEnumType, actIncompleteType:
		if !b.typeOpen {
			return nil, contract(tok)
		}
		b.typeOpen = false
		return vhdl.NewType(b.typeName, typeClassFor(tok.Action), b.takeMetacomments()), nil

	case actSubtype:
		return vhdl.NewSubtype(tok.Groups[0], tok.Groups[1], b.takeMetacomments()), nil
	case actConstant:
		return vhdl.NewConstant(tok.Groups[0], tok.Groups[1], b.takeMetacomments()), nil

	default:
		return nil, contract(tok)
	}
	return nil, nil
}

func (b *buildState) openDecl(kind vhdl.Kind, name string) {
	b.kind = kind
	b.open = true
	b.name = name
	b.staged = nil
	b.committed = nil
}

func (b *buildState) closeDecl() {
	b.open = false
	b.name = ""
	b.staged = nil
	b.committed = nil
}

// flushTyped back-fills mode and type onto the staged names and commits
// them to dst as one group. The group becomes the attachment target for
// following metacomments and defaults.
func (b *buildState) flushTyped(dst *[]vhdl.Parameter, mode vhdl.Mode, dataType string) {
	for i := range b.staged {
		b.staged[i].Mode = mode
		b.staged[i].DataType = dataType
	}
	n := len(b.staged)
	*dst = append(*dst, b.staged...)
	b.staged = nil
	b.target = dst
	b.targetLen = n
}

// backfillDefault sets the default value on the most recently typed group.
func (b *buildState) backfillDefault(value string) {
	if b.target == nil || b.targetLen == 0 {
		return
	}
	group := *b.target
	for i := len(group) - b.targetLen; i < len(group); i++ {
		group[i].Default = value
	}
}

func (b *buildState) clearTarget() {
	b.target = nil
	b.targetLen = 0
}

// takeMetacomments returns the buffered metacomments and clears the buffer.
func (b *buildState) takeMetacomments() []string {
	desc := b.metacomments
	b.metacomments = nil
	return desc
}

func typeClassFor(action string) vhdl.TypeClass {
	switch action {
	case actArrayType:
		return vhdl.ClassArray
	case actFileType:
		return vhdl.ClassFile
	case actAccessType:
		return vhdl.ClassAccess
	case actRecordType:
		return vhdl.ClassRecord
	case actRangeType:
		return vhdl.ClassRange
	case actEnumType:
		return vhdl.ClassEnum
	default:
		return vhdl.ClassIncomplete
	}
}

func contract(tok lexer.Token) error {
	return &ContractError{Action: tok.Action, Offset: int(tok.Span.Start)}
}
