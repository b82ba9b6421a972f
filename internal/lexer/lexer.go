// Package lexer provides a generic regex-table scanner with a stack of
// named states. The engine has no knowledge of any particular grammar:
// callers describe a language as a Table of states, each holding an
// ordered list of rules, and the machine applies the first rule whose
// pattern matches at the current cursor position.
package lexer

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/hdldoc/govhdl/internal/types"
)

// RootState is the initial state of every scan.
const RootState StateName = "root"

// StateName identifies a lexical state in a Table.
type StateName string

// Table describes a grammar as named states with ordered rules.
// Rule order matters: the first pattern that matches at the cursor wins.
type Table map[StateName][]Rule

// Rule is one pattern of a lexical state.
type Rule struct {
	// Pattern is a regular expression matched anchored at the cursor.
	Pattern string
	// Action is the tag emitted on a match. Empty means the match is
	// consumed silently.
	Action string
	// Op is the state-stack directive applied after a match.
	Op StateOp
}

type opKind int

const (
	opStay opKind = iota
	opPush
	opPop
)

// StateOp is a state-stack directive: stay, push a state, or pop n levels.
type StateOp struct {
	kind  opKind
	state StateName
	depth int
}

// Stay leaves the state stack unchanged.
func Stay() StateOp { return StateOp{kind: opStay} }

// Push enters the given state.
func Push(s StateName) StateOp { return StateOp{kind: opPush, state: s} }

// Pop leaves n levels of nested state. n must be >= 1.
func Pop(n int) StateOp { return StateOp{kind: opPop, depth: n} }

// Token is one event produced by a scan.
type Token struct {
	Span   types.Span
	Action string
	// Groups holds the rule's captured groups in order. An unmatched
	// optional group is the empty string.
	Groups []string
}

// LexicalError reports input that no rule of the active state matches.
type LexicalError struct {
	Offset int
	State  StateName
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d: no rule matches in state %q", e.Offset, e.State)
}

// StackError reports a pop directive that would underflow the state stack.
type StackError struct {
	Offset int
	State  StateName
	Depth  int
}

func (e *StackError) Error() string {
	return fmt.Sprintf("state stack underflow at offset %d: pop %d in state %q", e.Offset, e.Depth, e.State)
}

type compiledRule struct {
	re     *regexp.Regexp
	action string
	op     StateOp
}

// Machine is a compiled Table. It is immutable and safe to share; each
// call to Run scans independently.
type Machine struct {
	states map[StateName][]compiledRule
	types.Logger
}

// NewMachine compiles a table. The table must contain a "root" state and
// every Push target must name an existing state.
func NewMachine(table Table, logger *slog.Logger) (*Machine, error) {
	if _, ok := table[RootState]; !ok {
		return nil, fmt.Errorf("lexer table has no %q state", RootState)
	}

	states := make(map[StateName][]compiledRule, len(table))
	for name, rules := range table {
		compiled := make([]compiledRule, 0, len(rules))
		for i, r := range rules {
			re, err := regexp.Compile(`\A(?:` + r.Pattern + `)`)
			if err != nil {
				return nil, fmt.Errorf("state %q rule %d: %w", name, i, err)
			}
			if r.Op.kind == opPush {
				if _, ok := table[r.Op.state]; !ok {
					return nil, fmt.Errorf("state %q rule %d: push target %q does not exist", name, i, r.Op.state)
				}
			}
			if r.Op.kind == opPop && r.Op.depth < 1 {
				return nil, fmt.Errorf("state %q rule %d: pop depth %d", name, i, r.Op.depth)
			}
			compiled = append(compiled, compiledRule{re: re, action: r.Action, op: r.Op})
		}
		states[name] = compiled
	}

	m := &Machine{
		states: states,
		Logger: types.Logger{L: logger},
	}
	m.Log(slog.LevelDebug, "lexer table compiled", slog.Int("states", len(states)))
	return m, nil
}

// MustMachine is like NewMachine but panics on error. Intended for
// grammar tables fixed at build time.
func MustMachine(table Table, logger *slog.Logger) *Machine {
	m, err := NewMachine(table, logger)
	if err != nil {
		panic(err)
	}
	return m
}

// Run starts a scan of text from offset 0 in the root state.
func (m *Machine) Run(text string) *Scan {
	return &Scan{
		m:     m,
		text:  text,
		stack: []StateName{RootState},
	}
}

// Scan is one in-progress pass over an input text.
type Scan struct {
	m     *Machine
	text  string
	pos   int
	stack []StateName
}

// Pos returns the current cursor offset.
func (s *Scan) Pos() int { return s.pos }

// State returns the active (top of stack) state.
func (s *Scan) State() StateName { return s.stack[len(s.stack)-1] }

// Next returns the next token event. ok is false when the input is
// exhausted; a scan ends at end-of-input regardless of the stack depth,
// so a trailing unterminated construct is truncated, not an error.
func (s *Scan) Next() (tok Token, ok bool, err error) {
	for s.pos < len(s.text) {
		state := s.State()
		rules := s.m.states[state]

		matched := false
		for _, r := range rules {
			loc := r.re.FindStringSubmatchIndex(s.text[s.pos:])
			if loc == nil {
				continue
			}
			// A zero-length match that neither changes state nor
			// advances would loop forever; treat it as no match.
			if loc[1] == 0 && r.op.kind == opStay {
				continue
			}

			start := s.pos
			end := s.pos + loc[1]

			if err := s.apply(r.op, start, state); err != nil {
				return Token{}, false, err
			}
			s.pos = end
			matched = true

			if r.action == "" {
				break
			}

			tok := Token{
				Span:   types.NewSpan(types.ByteOffset(start), types.ByteOffset(end)),
				Action: r.action,
				Groups: captureGroups(s.text[start:], loc),
			}
			if s.m.TraceEnabled() {
				s.m.Trace("token",
					slog.String("action", tok.Action),
					slog.String("state", string(state)),
					slog.Int("start", start),
					slog.Int("end", end))
			}
			return tok, true, nil
		}

		if !matched {
			return Token{}, false, &LexicalError{Offset: s.pos, State: state}
		}
	}
	return Token{}, false, nil
}

// All collects every remaining token event of the scan.
func (s *Scan) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (s *Scan) apply(op StateOp, offset int, state StateName) error {
	switch op.kind {
	case opPush:
		s.stack = append(s.stack, op.state)
	case opPop:
		if len(s.stack)-op.depth < 1 {
			return &StackError{Offset: offset, State: state, Depth: op.depth}
		}
		s.stack = s.stack[:len(s.stack)-op.depth]
	}
	return nil
}

// captureGroups extracts submatches from a FindStringSubmatchIndex result.
// text must start at the match position.
func captureGroups(text string, loc []int) []string {
	n := len(loc)/2 - 1
	if n == 0 {
		return nil
	}
	groups := make([]string, n)
	for i := 1; i <= n; i++ {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 {
			continue
		}
		groups[i-1] = text[lo:hi]
	}
	return groups
}
