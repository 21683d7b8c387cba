// Package blanker strips comments and string literals out of source text
// while preserving every line break, so identifier extraction downstream
// never mistakes a word inside a comment or string for a real identifier
// and never shifts a reported line number.
package blanker

import (
	"regexp"
	"strings"
)

const (
	cStyleComment   = `(/\*(?:\n|.)*?\*/)`
	cppStyleComment = `(//.*?$)`
	pyStyleComment  = `(#.*?$)`

	// The leading (?:[^\\]) guard keeps an escaped quote from starting a
	// string match; it's part of the match but deliberately outside the
	// capturing group, so it survives blanking untouched.
	singleQuoteString = `(?:[^\\])('(?:\\\\|\\'|.)*?')`
	doubleQuoteString = `(?:[^\\])("(?:\\\\|\\"|.)*?")`
	backQuoteString   = "(?:[^\\\\])(`(?:\\\\\\\\|\\\\`|\\n|.)*?`)"

	multilineSingleQuoteString = `(?:[^\\])('''(?:\n|.)*?''')`
	multilineDoubleQuoteString = `(?:[^\\])("""(?:\n|.)*?""")`
)

func join(parts ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)` + strings.Join(parts, "|"))
}

var (
	defaultPattern = join(
		cStyleComment, cppStyleComment, pyStyleComment,
		singleQuoteString, doubleQuoteString, backQuoteString,
		multilineSingleQuoteString, multilineDoubleQuoteString,
	)

	cStyleFamilyPattern = join(
		cStyleComment, cppStyleComment, singleQuoteString, doubleQuoteString,
	)

	goPattern = join(
		cStyleComment, cppStyleComment, singleQuoteString, doubleQuoteString, backQuoteString,
	)

	pythonPattern = join(
		pyStyleComment, multilineSingleQuoteString, multilineDoubleQuoteString,
		singleQuoteString, doubleQuoteString,
	)

	rustPattern = join(
		cppStyleComment, singleQuoteString, doubleQuoteString,
	)
)

var filetypeTable = map[string]*regexp.Regexp{
	"cpp":        cStyleFamilyPattern,
	"c":          cStyleFamilyPattern,
	"cuda":       cStyleFamilyPattern,
	"objc":       cStyleFamilyPattern,
	"objcpp":     cStyleFamilyPattern,
	"javascript": cStyleFamilyPattern,
	"typescript": cStyleFamilyPattern,

	"go": goPattern,

	"python": pythonPattern,

	"rust": rustPattern,
}

func patternFor(filetype string) *regexp.Regexp {
	if p, ok := filetypeTable[filetype]; ok {
		return p
	}
	return defaultPattern
}

// RemoveIdentifierFreeText blanks every comment and string literal in text
// under filetype's grammar, replacing each one with the same number of
// newline characters it contained (minus the newline-free first line) so
// callers can still resolve line/column positions against the result. Any
// un-captured guard character a pattern matched alongside its capture (see
// singleQuoteString et al.) is copied through verbatim.
func RemoveIdentifierFreeText(text, filetype string) string {
	re := patternFor(filetype)
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		matchStart, matchEnd := loc[0], loc[1]
		b.WriteString(text[prev:matchStart])
		b.WriteString(blankMatch(text, loc))
		prev = matchEnd
	}
	b.WriteString(text[prev:])
	return b.String()
}

// blankMatch renders one regex match as blanked text: any span outside the
// match's participating capture group(s) is preserved, and each captured
// span is replaced by a run of newlines equal to the newlines it contained.
func blankMatch(text string, loc []int) string {
	matchStart, matchEnd := loc[0], loc[1]

	var b strings.Builder
	prev := matchStart
	found := false
	for g := 1; g < len(loc)/2; g++ {
		gs, ge := loc[2*g], loc[2*g+1]
		if gs < 0 {
			continue
		}
		found = true
		if prev < gs {
			b.WriteString(text[prev:gs])
		}
		b.WriteString(strings.Repeat("\n", strings.Count(text[gs:ge], "\n")))
		prev = ge
	}
	if !found {
		return strings.Repeat("\n", strings.Count(text[matchStart:matchEnd], "\n"))
	}
	if prev < matchEnd {
		b.WriteString(text[prev:matchEnd])
	}
	return b.String()
}
