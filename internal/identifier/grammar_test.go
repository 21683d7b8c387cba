package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifierGeneric(t *testing.T) {
	assert.True(t, IsIdentifier("foo", ""))
	assert.True(t, IsIdentifier("foo129", ""))
	assert.True(t, IsIdentifier("f12", ""))
	assert.True(t, IsIdentifier("_foo", ""))
	assert.True(t, IsIdentifier("_foo129", ""))
	assert.True(t, IsIdentifier("_f12", ""))
	assert.True(t, IsIdentifier("uniçode", ""))
	assert.True(t, IsIdentifier("uç", ""))
	assert.True(t, IsIdentifier("ç", ""))
	assert.True(t, IsIdentifier("çode", ""))

	assert.False(t, IsIdentifier("1foo129", ""))
	assert.False(t, IsIdentifier("-foo", ""))
	assert.False(t, IsIdentifier("foo-", ""))
	assert.False(t, IsIdentifier("font-face", ""))
	assert.False(t, IsIdentifier("", ""))
}

func TestIsIdentifierJavascript(t *testing.T) {
	assert.True(t, IsIdentifier("_føo1", "javascript"))
	assert.True(t, IsIdentifier("fø_o1", "javascript"))
	assert.True(t, IsIdentifier("$føo1", "javascript"))
	assert.True(t, IsIdentifier("fø$o1", "javascript"))
	assert.False(t, IsIdentifier("1føo", "javascript"))
}

func TestIsIdentifierTypescript(t *testing.T) {
	assert.True(t, IsIdentifier("_føo1", "typescript"))
	assert.True(t, IsIdentifier("$føo1", "typescript"))
	assert.False(t, IsIdentifier("1føo", "typescript"))
}

func TestIsIdentifierCSS(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "css"))
	assert.True(t, IsIdentifier("a", "css"))
	assert.True(t, IsIdentifier("a1", "css"))
	assert.True(t, IsIdentifier("a-", "css"))
	assert.True(t, IsIdentifier("a-b", "css"))
	assert.True(t, IsIdentifier("_b", "css"))
	assert.True(t, IsIdentifier("-ms-foo", "css"))
	assert.True(t, IsIdentifier("-_o", "css"))
	assert.True(t, IsIdentifier("font-face", "css"))
	assert.True(t, IsIdentifier("αβγ", "css"))

	assert.False(t, IsIdentifier("-3b", "css"))
	assert.False(t, IsIdentifier("-3", "css"))
	assert.False(t, IsIdentifier("--", "css"))
	assert.False(t, IsIdentifier("3", "css"))
	assert.False(t, IsIdentifier("€", "css"))
	assert.False(t, IsIdentifier("", "css"))
}

func TestIsIdentifierR(t *testing.T) {
	assert.True(t, IsIdentifier("a", "r"))
	assert.True(t, IsIdentifier("a.b", "r"))
	assert.True(t, IsIdentifier("a.b.c", "r"))
	assert.True(t, IsIdentifier("a_b", "r"))
	assert.True(t, IsIdentifier("a1", "r"))
	assert.True(t, IsIdentifier("a_1", "r"))
	assert.True(t, IsIdentifier(".a", "r"))
	assert.True(t, IsIdentifier(".a_b", "r"))
	assert.True(t, IsIdentifier(".a1", "r"))
	assert.True(t, IsIdentifier("...", "r"))
	assert.True(t, IsIdentifier("..1", "r"))

	assert.False(t, IsIdentifier(".1a", "r"))
	assert.False(t, IsIdentifier(".1", "r"))
	assert.False(t, IsIdentifier("1a", "r"))
	assert.False(t, IsIdentifier("123", "r"))
	assert.False(t, IsIdentifier("_1a", "r"))
	assert.False(t, IsIdentifier("_a", "r"))
	assert.False(t, IsIdentifier("", "r"))
}

func TestIsIdentifierClojure(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "clojure"))
	assert.True(t, IsIdentifier("f9", "clojure"))
	assert.True(t, IsIdentifier("a.b.c", "clojure"))
	assert.True(t, IsIdentifier("a.c", "clojure"))
	assert.True(t, IsIdentifier("a/c", "clojure"))
	assert.True(t, IsIdentifier("*", "clojure"))
	assert.True(t, IsIdentifier("a*b", "clojure"))
	assert.True(t, IsIdentifier("?", "clojure"))
	assert.True(t, IsIdentifier("a?b", "clojure"))
	assert.True(t, IsIdentifier(":", "clojure"))
	assert.True(t, IsIdentifier("a:b", "clojure"))
	assert.True(t, IsIdentifier("+", "clojure"))
	assert.True(t, IsIdentifier("a+b", "clojure"))
	assert.True(t, IsIdentifier("-", "clojure"))
	assert.True(t, IsIdentifier("a-b", "clojure"))
}

func TestIsIdentifierElisp(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "elisp"))
	assert.True(t, IsIdentifier("f9", "elisp"))
	assert.True(t, IsIdentifier("a.b.c", "elisp"))
	assert.True(t, IsIdentifier("a/c", "elisp"))

	assert.False(t, IsIdentifier("9f", "elisp"))
	assert.False(t, IsIdentifier("9", "elisp"))
	assert.False(t, IsIdentifier("a/b/c", "elisp"))
	assert.False(t, IsIdentifier("(a)", "elisp"))
	assert.False(t, IsIdentifier("", "elisp"))
}

func TestIsIdentifierHaskell(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "haskell"))
	assert.True(t, IsIdentifier("foo'", "haskell"))
	assert.True(t, IsIdentifier("x'", "haskell"))
	assert.True(t, IsIdentifier("_x'", "haskell"))
	assert.True(t, IsIdentifier("_x", "haskell"))
	assert.True(t, IsIdentifier("x9", "haskell"))

	assert.False(t, IsIdentifier("'x", "haskell"))
	assert.False(t, IsIdentifier("9x", "haskell"))
	assert.False(t, IsIdentifier("9", "haskell"))
	assert.False(t, IsIdentifier("", "haskell"))
}

func TestIsIdentifierTex(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "tex"))
	assert.True(t, IsIdentifier("fig:foo", "tex"))
	assert.True(t, IsIdentifier("fig:foo-bar", "tex"))
	assert.True(t, IsIdentifier("sec:summary", "tex"))
	assert.True(t, IsIdentifier("eq:bar_foo", "tex"))
	assert.True(t, IsIdentifier("fōo", "tex"))
	assert.True(t, IsIdentifier("some8", "tex"))

	assert.False(t, IsIdentifier(`\section`, "tex"))
	assert.False(t, IsIdentifier("foo:", "tex"))
	assert.False(t, IsIdentifier("-bar", "tex"))
	assert.False(t, IsIdentifier("", "tex"))
}

func TestIsIdentifierPerl6(t *testing.T) {
	assert.True(t, IsIdentifier("foo", "perl6"))
	assert.True(t, IsIdentifier("f-o", "perl6"))
	assert.True(t, IsIdentifier("x'y", "perl6"))
	assert.True(t, IsIdentifier("_x-y", "perl6"))
	assert.True(t, IsIdentifier("x-y'a", "perl6"))
	assert.True(t, IsIdentifier("x-_", "perl6"))
	assert.True(t, IsIdentifier("x-_7", "perl6"))
	assert.True(t, IsIdentifier("_x", "perl6"))
	assert.True(t, IsIdentifier("x9", "perl6"))

	assert.False(t, IsIdentifier("'x", "perl6"))
	assert.False(t, IsIdentifier("x'", "perl6"))
	assert.False(t, IsIdentifier("-x", "perl6"))
	assert.False(t, IsIdentifier("x-", "perl6"))
	assert.False(t, IsIdentifier("x-1", "perl6"))
}

func TestIsIdentifierScheme(t *testing.T) {
	assert.True(t, IsIdentifier("λ", "scheme"))
	assert.True(t, IsIdentifier("_", "scheme"))
	assert.True(t, IsIdentifier("+", "scheme"))
	assert.True(t, IsIdentifier("-", "scheme"))
	assert.True(t, IsIdentifier("...", "scheme"))
	assert.True(t, IsIdentifier(`\x01;`, "scheme"))
	assert.True(t, IsIdentifier(`h\x65;lle`, "scheme"))
	assert.True(t, IsIdentifier("foo", "scheme"))
	assert.True(t, IsIdentifier("foo+-*/1-1", "scheme"))
	assert.True(t, IsIdentifier("call/cc", "scheme"))

	assert.False(t, IsIdentifier(".", "scheme"))
	assert.False(t, IsIdentifier("..", "scheme"))
	assert.False(t, IsIdentifier("--", "scheme"))
	assert.False(t, IsIdentifier("++", "scheme"))
}

func TestStartOfLongestIdentifierEndingAtIndexSimple(t *testing.T) {
	assert.Equal(t, 0, StartOfLongestIdentifierEndingAtIndex("foo", 3, ""))
	assert.Equal(t, 0, StartOfLongestIdentifierEndingAtIndex("", 0, ""))
}

func TestStartOfLongestIdentifierEndingAtIndexBadInput(t *testing.T) {
	assert.Equal(t, 5, StartOfLongestIdentifierEndingAtIndex("foo", 5, ""))
}

func TestStartOfLongestIdentifierEndingAtIndexPunctuation(t *testing.T) {
	assert.Equal(t, 4, StartOfLongestIdentifierEndingAtIndex("foo.bar", 7, ""))
	assert.Equal(t, 0, StartOfLongestIdentifierEndingAtIndex("foo.bar", 3, ""))
}

func TestStartOfLongestIdentifierEndingAtIndexUnicode(t *testing.T) {
	text := "résumé_foo"
	idx := len(text)
	start := StartOfLongestIdentifierEndingAtIndex(text, idx, "")
	assert.Equal(t, text, text[start:idx])
}
