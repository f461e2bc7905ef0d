// Package lexer implements a configurable, stateful pattern scanner.
//
// A Scanner is driven entirely by data: a set of named states, each
// holding an ordered list of rules. A rule pairs an anchored pattern
// with an optional action name and a state transition (push a named
// state, pop the current one, or stay). The scanner keeps a stack of
// states, tries the rules of the top state in order at the current
// cursor, and commits to the first match. Silent rules (empty action)
// advance the cursor and apply their transition without emitting a
// token.
//
// The produced token sequence is lazy, single-pass and non-restartable.
// Scanning stops either at the end of the input or at the first
// position where no rule of the active state matches, which is reported
// as a LexicalError. The scanner itself has no notion of "must end at
// the root state"; callers that care about unterminated constructs
// inspect Depth after the stream is exhausted.
package lexer

import (
	"fmt"
	"regexp"
)

type transitionOp int

const (
	opStay transitionOp = iota
	opPush
	opPop
)

// Transition describes what a rule does to the state stack after its
// pattern matches. The zero value leaves the stack unchanged.
type Transition struct {
	op    transitionOp
	state string
}

// Stay returns the no-op transition.
func Stay() Transition { return Transition{} }

// Push returns a transition that pushes the named state.
func Push(state string) Transition { return Transition{op: opPush, state: state} }

// Pop returns a transition that pops the current state.
func Pop() Transition { return Transition{op: opPop} }

// Rule is one entry of a state's ordered rule list. Rules are built
// with NewRule; the pattern is compiled anchored so it can only match
// at the scanner's cursor.
type Rule struct {
	pattern *regexp.Regexp
	action  string
	next    Transition
}

// NewRule compiles pattern into a rule emitting the given action name.
// An empty action makes the rule silent. The pattern is anchored at the
// cursor; it must not be able to match the empty string (such a rule
// would never advance the scan and is skipped at runtime).
func NewRule(pattern, action string, next Transition) Rule {
	return Rule{
		pattern: regexp.MustCompile(`^(?:` + pattern + `)`),
		action:  action,
		next:    next,
	}
}

// States maps state names to their ordered rule lists. Rule order is
// significant: the first matching rule wins.
type States map[string][]Rule

// Token is one emission of the scanner: the offset at which the rule
// matched, the rule's action name and the pattern's captured groups.
// Unmatched optional groups are empty strings.
type Token struct {
	Pos    int
	Action string
	Groups []string
}

// LexicalError reports a position where no rule of the active state
// matched. It is fatal for the whole scan.
type LexicalError struct {
	Offset int
	State  string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("no rule matches at offset %d in state %q", e.Offset, e.State)
}

// Scanner scans one input text against a state configuration. It is
// single-use: after the stream is exhausted or fails it cannot be
// rewound or restarted.
type Scanner struct {
	states States
	text   string
	pos    int
	stack  []string
	err    error
}

// NewScanner returns a scanner over text starting in the root state.
func NewScanner(states States, root, text string) *Scanner {
	return &Scanner{
		states: states,
		text:   text,
		stack:  []string{root},
	}
}

// Next returns the next emitted token. It reports false when the input
// is exhausted or when scanning failed; Err distinguishes the two.
func (s *Scanner) Next() (Token, bool) {
	if s.err != nil {
		return Token{}, false
	}
	for s.pos < len(s.text) {
		state := s.stack[len(s.stack)-1]
		rest := s.text[s.pos:]
		var rule *Rule
		var m []int
		for i := range s.states[state] {
			r := &s.states[state][i]
			if idx := r.pattern.FindStringSubmatchIndex(rest); idx != nil && idx[1] > 0 {
				rule, m = r, idx
				break
			}
		}
		if rule == nil {
			s.err = &LexicalError{Offset: s.pos, State: state}
			return Token{}, false
		}
		start := s.pos
		groups := s.captureGroups(m)
		s.pos += m[1]
		switch rule.next.op {
		case opPush:
			s.stack = append(s.stack, rule.next.state)
		case opPop:
			if len(s.stack) > 1 {
				s.stack = s.stack[:len(s.stack)-1]
			}
		}
		if rule.action != "" {
			return Token{Pos: start, Action: rule.action, Groups: groups}, true
		}
	}
	return Token{}, false
}

// captureGroups extracts the submatches of an index result relative to
// the cursor. Groups that did not participate become empty strings.
func (s *Scanner) captureGroups(m []int) []string {
	n := len(m)/2 - 1
	if n == 0 {
		return nil
	}
	groups := make([]string, n)
	for i := 0; i < n; i++ {
		lo, hi := m[2+2*i], m[3+2*i]
		if lo >= 0 {
			groups[i] = s.text[s.pos+lo : s.pos+hi]
		}
	}
	return groups
}

// Err returns the scan failure, if any, once Next has reported false.
func (s *Scanner) Err() error {
	return s.err
}

// Pos returns the current cursor offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// Depth returns the current state stack depth. A depth greater than one
// after the stream is exhausted means the input ended inside a pushed
// state, e.g. an unterminated comment.
func (s *Scanner) Depth() int {
	return len(s.stack)
}
