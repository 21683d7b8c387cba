// Package identifier implements the per-filetype identifier grammar
// registry: is_identifier and the "start of the identifier ending at the
// cursor" search the request model and the filename/generic completers
// build on.
package identifier

import "regexp"

// pattern pairs a compiled identifier regex with the index of its named "id"
// capture group, or -1 when the whole match is the identifier span.
type pattern struct {
	re      *regexp.Regexp
	idGroup int
}

func newPattern(expr string) pattern {
	re := regexp.MustCompile(expr)
	idGroup := -1
	for i, name := range re.SubexpNames() {
		if name == "id" {
			idGroup = i
			break
		}
	}
	return pattern{re: re, idGroup: idGroup}
}

// RE2 has no Unicode-aware \w/\d shorthand (they're ASCII-only), so every
// table entry below spells the word-char and digit classes out in terms of
// \p{L} (letter) and \p{Nd} (decimal digit) to keep accented and non-Latin
// identifiers ("café", "ьсе", "αβγ") recognized the way they'd be under a
// Unicode-aware engine.
const (
	wordHead = `\p{L}_`
	wordTail = `\p{L}\p{Nd}_`
	digit    = `\p{Nd}`
)

// defaultPattern is the identifier grammar used for filetypes with no dedicated
// entry: a letter-or-underscore lead character followed by any run of word
// characters.
var defaultPattern = newPattern(`[` + wordHead + `][` + wordTail + `]*`)

// grammarTable is the process-wide, construct-once, read-many identifier
// grammar registry. Only RegisterOverride changes it, at startup; after
// that, concurrent reads need no locking.
var grammarTable = map[string]pattern{
	"javascript": newPattern(`(?:[` + wordHead + `]|\$)[` + wordTail + `$]*`),
	"typescript": newPattern(`(?:[` + wordHead + `]|\$)[` + wordTail + `$]*`),

	"css":  newPattern(`-?[` + wordHead + `][` + wordTail + `-]*`),
	"scss": newPattern(`-?[` + wordHead + `][` + wordTail + `-]*`),
	"sass": newPattern(`-?[` + wordHead + `][` + wordTail + `-]*`),
	"less": newPattern(`-?[` + wordHead + `][` + wordTail + `-]*`),

	"html": newPattern(`[a-zA-Z][^\s/>='"}{.]*`),

	"r": newPattern(`(?:\.` + digit + `|` + digit + `|_)?(?P<id>[.` + wordTail + `]*)`),

	"clojure": newPattern(`[-*+!_?:.a-zA-Z][-*+!_?:.` + wordTail + `]*/?[-*+!_?:.` + wordTail + `]*`),
	"elisp":   newPattern(`[-*+!_?:.a-zA-Z][-*+!_?:.` + wordTail + `]*/?[-*+!_?:.` + wordTail + `]*`),
	"lisp":    newPattern(`[-*+!_?:.a-zA-Z][-*+!_?:.` + wordTail + `]*/?[-*+!_?:.` + wordTail + `]*`),

	"haskell": newPattern(`[_a-zA-Z][` + wordTail + `']+`),

	"tex": newPattern(`[` + wordHead + `](?:[` + wordTail + `:-]*[` + wordTail + `])?`),

	"perl6": newPattern(`[_a-zA-Z](?:[` + wordTail + `]|[-'](?:[_a-zA-Z]))*`),

	"scheme": newPattern(`\+|\-|\.\.\.|(?:->|(?:\\x[0-9A-Fa-f]+;|[!$%&*/:<=>?~^]|[` + wordHead + `]))(?:\\x[0-9A-Fa-f]+;|[-+.@!$%&*/:<=>?~^` + wordTail + `])*`),
}

// RegisterOverride installs a project-supplied identifier grammar for
// filetype, replacing (or adding to) the built-in grammarTable entry.
// Must only be called during startup, before any request reaches
// IsIdentifier or StartOfLongestIdentifierEndingAtIndex: grammarTable is
// construct-once, read-many with no synchronization once the server is
// serving requests.
func RegisterOverride(filetype, expr string) {
	grammarTable[filetype] = newPattern(expr)
}

func patternFor(filetype string) pattern {
	if p, ok := grammarTable[filetype]; ok {
		return p
	}
	return defaultPattern
}

// IsIdentifier reports whether text, in its entirety, is a single
// identifier under filetype's grammar. An empty filetype uses the default
// grammar.
func IsIdentifier(text, filetype string) bool {
	if text == "" {
		return false
	}

	p := patternFor(filetype)
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return false
	}

	start, end := loc[0], loc[1]
	if p.idGroup > 0 {
		gs, ge := loc[2*p.idGroup], loc[2*p.idGroup+1]
		if gs < 0 {
			return false
		}
		start, end = gs, ge
	}

	return start == 0 && end == len(text)
}

// isCharBoundary reports whether byte offset i in text falls on a UTF-8
// rune boundary.
func isCharBoundary(text string, i int) bool {
	if i <= 0 || i >= len(text) {
		return true
	}
	return text[i]&0xC0 != 0x80
}

// StartOfLongestIdentifierEndingAtIndex returns the byte offset in text of
// the first character of the longest identifier (under filetype's grammar)
// that ends exactly at index (index itself is exclusive — text[start:index]
// is the identifier). index is a byte offset.
//
// Out-of-range or misaligned input is returned unchanged: if index exceeds
// len(text) or doesn't land on a char boundary, index itself is the result.
// If no identifier ends at index, index itself is returned too.
func StartOfLongestIdentifierEndingAtIndex(text string, index int, filetype string) int {
	if index > len(text) || !isCharBoundary(text, index) {
		return index
	}

	for i := 0; i < index; i++ {
		if isCharBoundary(text, i) && IsIdentifier(text[i:index], filetype) {
			return i
		}
	}
	return index
}
