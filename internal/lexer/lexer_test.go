package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A tiny bracketed-word dialect exercises the engine without dragging
// in any real language rules.
func toyStates() States {
	return States{
		"root": {
			NewRule(`\s+`, "", Stay()),
			NewRule(`\[`, "open", Push("bracket")),
			NewRule(`(\w+)`, "word", Stay()),
		},
		"bracket": {
			NewRule(`\s+`, "", Stay()),
			NewRule(`\]`, "close", Pop()),
			NewRule(`(\w+)=(\w+)`, "pair", Stay()),
			NewRule(`(\w+)`, "item", Stay()),
		},
	}
}

func collect(t *testing.T, s *Scanner) []Token {
	t.Helper()
	var tokens []Token
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	require.NoError(t, s.Err())
	return tokens
}

func TestScannerEmitsTokensInOrder(t *testing.T) {
	s := NewScanner(toyStates(), "root", "foo bar")
	tokens := collect(t, s)

	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Pos: 0, Action: "word", Groups: []string{"foo"}}, tokens[0])
	assert.Equal(t, Token{Pos: 4, Action: "word", Groups: []string{"bar"}}, tokens[1])
}

func TestSilentRulesAdvanceWithoutEmitting(t *testing.T) {
	s := NewScanner(toyStates(), "root", "   foo   ")
	tokens := collect(t, s)

	require.Len(t, tokens, 1)
	assert.Equal(t, "word", tokens[0].Action)
	assert.Equal(t, 3, tokens[0].Pos)
}

func TestPushAndPopSwitchRuleSets(t *testing.T) {
	s := NewScanner(toyStates(), "root", "a [x k=v] b")
	tokens := collect(t, s)

	var actions []string
	for _, tok := range tokens {
		actions = append(actions, tok.Action)
	}
	assert.Equal(t, []string{"word", "open", "item", "pair", "close", "word"}, actions)

	pair := tokens[3]
	assert.Equal(t, []string{"k", "v"}, pair.Groups)
}

func TestFirstMatchingRuleWins(t *testing.T) {
	// Inside brackets "k=v" must hit the pair rule even though the
	// bare item rule would also match its first word.
	s := NewScanner(toyStates(), "bracket", "k=v")
	tokens := collect(t, s)

	require.Len(t, tokens, 1)
	assert.Equal(t, "pair", tokens[0].Action)
}

func TestUnmatchedGroupsAreEmpty(t *testing.T) {
	states := States{
		"root": {
			NewRule(`(a)?(b)`, "ab", Stay()),
		},
	}
	s := NewScanner(states, "root", "b")
	tokens := collect(t, s)

	require.Len(t, tokens, 1)
	assert.Equal(t, []string{"", "b"}, tokens[0].Groups)
}

func TestLexicalErrorReportsOffsetAndState(t *testing.T) {
	s := NewScanner(toyStates(), "root", "foo [bar !]")

	for {
		if _, ok := s.Next(); !ok {
			break
		}
	}

	var lexErr *LexicalError
	require.ErrorAs(t, s.Err(), &lexErr)
	assert.Equal(t, 9, lexErr.Offset)
	assert.Equal(t, "bracket", lexErr.State)

	// The stream stays failed.
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestDepthAfterUnterminatedPush(t *testing.T) {
	s := NewScanner(toyStates(), "root", "foo [bar")
	collect(t, s)

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, 8, s.Pos())
}

func TestDepthBackToOneAfterBalancedInput(t *testing.T) {
	s := NewScanner(toyStates(), "root", "[a] [b]")
	collect(t, s)

	assert.Equal(t, 1, s.Depth())
}

func TestPopNeverUnderflowsTheStack(t *testing.T) {
	states := States{
		"root": {
			NewRule(`\s+`, "", Stay()),
			NewRule(`x`, "x", Pop()),
		},
	}
	s := NewScanner(states, "root", "x x")
	tokens := collect(t, s)

	assert.Len(t, tokens, 2)
	assert.Equal(t, 1, s.Depth())
}

func TestZeroWidthMatchesAreSkipped(t *testing.T) {
	// The first rule can match empty; it must not stall the scan.
	states := States{
		"root": {
			NewRule(`a*`, "as", Stay()),
			NewRule(`b`, "b", Stay()),
		},
	}
	s := NewScanner(states, "root", "ba")
	tokens := collect(t, s)

	require.Len(t, tokens, 2)
	assert.Equal(t, "b", tokens[0].Action)
	assert.Equal(t, "as", tokens[1].Action)
}

func TestLexicalErrorMessage(t *testing.T) {
	err := &LexicalError{Offset: 42, State: "bracket"}
	assert.Equal(t, `no rule matches at offset 42 in state "bracket"`, err.Error())
}
