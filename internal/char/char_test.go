package char

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, g string) Character {
	t.Helper()
	c, err := New(g)
	require.NoError(t, err)
	return c
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMalformedGrapheme)
}

func TestSmartCaseEqReflexive(t *testing.T) {
	for _, g := range []string{"e", "é", "E", "É", "a", "1", "_"} {
		c := mustNew(t, g)
		assert.True(t, c.SmartCaseEq(c), "grapheme %q should match itself", g)
	}
}

func TestSmartCaseEqLowercaseMatchesVariants(t *testing.T) {
	e := mustNew(t, "e")
	for _, g := range []string{"e", "é", "E", "É"} {
		assert.True(t, e.SmartCaseEq(mustNew(t, g)), "e should match %q", g)
	}
}

func TestSmartCaseEqUppercaseIsStricter(t *testing.T) {
	upperE := mustNew(t, "E")
	assert.True(t, upperE.SmartCaseEq(mustNew(t, "E")))
	assert.True(t, upperE.SmartCaseEq(mustNew(t, "É")))
	assert.False(t, upperE.SmartCaseEq(mustNew(t, "e")))
	assert.False(t, upperE.SmartCaseEq(mustNew(t, "é")))
}

func TestSmartCaseEqAccentedIsStrictest(t *testing.T) {
	accented := mustNew(t, "é")
	assert.True(t, accented.SmartCaseEq(mustNew(t, "é")))
	assert.True(t, accented.SmartCaseEq(mustNew(t, "É")))
	assert.False(t, accented.SmartCaseEq(mustNew(t, "e")))
	assert.False(t, accented.SmartCaseEq(mustNew(t, "E")))
}

func TestIsUppercase(t *testing.T) {
	assert.True(t, mustNew(t, "E").IsUppercase)
	assert.False(t, mustNew(t, "e").IsUppercase)
}

func TestIsPunctuation(t *testing.T) {
	assert.True(t, mustNew(t, ",").IsPunctuation)
	assert.True(t, mustNew(t, " ").IsPunctuation)
	assert.False(t, mustNew(t, "a").IsPunctuation)
}

// is_ascii_punctuation's ranges include ASCII symbol characters that
// Unicode's narrower Punct category (Sc/Sm/Sk) excludes.
func TestIsPunctuationIncludesASCIISymbolCharacters(t *testing.T) {
	for _, c := range []string{"$", "+", "<", "=", ">", "^", "`", "|", "~"} {
		assert.True(t, mustNew(t, c).IsPunctuation, "expected %q to be punctuation", c)
	}
}
