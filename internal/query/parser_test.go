package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndOrPrecedence(t *testing.T) {
	got, err := Parse(`(apple AND banana) OR cherry`)
	require.NoError(t, err)
	want := OrNode{
		Left:  AndNode{Left: TermNode{Term: "apple"}, Right: TermNode{Term: "banana"}},
		Right: TermNode{Term: "cherry"},
	}
	assert.Equal(t, want, got)
}

func TestParseNot(t *testing.T) {
	got, err := Parse(`NOT dog`)
	require.NoError(t, err)
	assert.Equal(t, NotNode{Child: TermNode{Term: "dog"}}, got)
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	got, err := Parse(`apple OR banana AND cherry`)
	require.NoError(t, err)
	want := OrNode{
		Left:  TermNode{Term: "apple"},
		Right: AndNode{Left: TermNode{Term: "banana"}, Right: TermNode{Term: "cherry"}},
	}
	assert.Equal(t, want, got)
}

func TestParsePhrase(t *testing.T) {
	got, err := Parse(`"brown fox"`)
	require.NoError(t, err)
	assert.Equal(t, PhraseNode{Phrase: "brown fox"}, got)
}

func TestParseUnexpectedTrailingTokens(t *testing.T) {
	_, err := Parse(`apple )`)
	assert.Error(t, err)
}

func TestParseMissingOperand(t *testing.T) {
	_, err := Parse(`apple AND`)
	assert.Error(t, err)
}

func TestParseUnbalancedParens(t *testing.T) {
	_, err := Parse(`(apple AND banana`)
	assert.Error(t, err)
}

func TestParseLeftAssociativity(t *testing.T) {
	got, err := Parse(`apple AND banana AND cherry`)
	require.NoError(t, err)
	want := AndNode{
		Left:  AndNode{Left: TermNode{Term: "apple"}, Right: TermNode{Term: "banana"}},
		Right: TermNode{Term: "cherry"},
	}
	assert.Equal(t, want, got)
}
