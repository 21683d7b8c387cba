// Package char implements the grapheme-level character model the ranking
// engine is built on: each user-perceived character is decomposed once into
// the normal/base/folded-case/swapped-case forms smartcaseeq compares.
package char

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedGrapheme is returned when Character construction is given an
// empty grapheme cluster.
var ErrMalformedGrapheme = errors.New("char: malformed grapheme")

// Character is a single grapheme cluster with its precomputed comparison
// forms. It never mutates after New returns.
type Character struct {
	Normal       string
	Base         string
	FoldedCase   string
	SwappedCase  string
	IsBase       bool
	IsUppercase  bool
	IsPunctuation bool
	IsLetter     bool
}

// isCombining reports whether r is a combining mark or separator code point
// and so is excluded from Base, mirroring the Before/After/BeforeAndAfter/Space
// line-break classes used upstream. Go's ecosystem (including every example
// in this retrieval pack) has no UAX #14 line-break property table, so
// Unicode's own mark categories plus whitespace stand in for it.
func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r) || unicode.IsSpace(r)
}

// New decomposes a single grapheme cluster (one user-perceived character,
// e.g. one segment from a uax29 grapheme segmenter) into its comparison forms.
func New(grapheme string) (Character, error) {
	if grapheme == "" {
		return Character{}, ErrMalformedGrapheme
	}

	decomposed := norm.NFD.String(grapheme)

	var normal, base, folded, swapped strings.Builder
	var isBase, isUppercase, isPunctuation, isLetter bool

	for _, r := range decomposed {
		normal.WriteRune(r)

		if isCombining(r) {
			isBase = false
		} else {
			base.WriteString(strings.ToLower(string(r)))
			isBase = true
		}

		isUppercase = isUppercase || unicode.IsUpper(r)
		isPunctuation = isPunctuation || isASCIIPunctOrSpace(r)
		isLetter = isLetter || unicode.IsLetter(r)

		folded.WriteString(strings.ToLower(string(r)))

		if unicode.IsLower(r) {
			swapped.WriteString(strings.ToUpper(string(r)))
		} else {
			swapped.WriteString(strings.ToLower(string(r)))
		}
	}

	return Character{
		Normal:        normal.String(),
		Base:          base.String(),
		FoldedCase:    folded.String(),
		SwappedCase:   swapped.String(),
		IsBase:        isBase,
		IsUppercase:   isUppercase,
		IsPunctuation: isPunctuation,
		IsLetter:      isLetter,
	}, nil
}

// isASCIIPunctOrSpace mirrors Rust's c.is_ascii_punctuation() || c.is_whitespace():
// for ASCII code points that means the four is_ascii_punctuation ranges
// (0x21-0x2F, 0x3A-0x40, 0x5B-0x60, 0x7B-0x7E), not Unicode's narrower Punct
// category, which excludes ASCII symbol characters like $ + < = > ^ ` | ~.
func isASCIIPunctOrSpace(r rune) bool {
	if r > unicode.MaxASCII {
		return unicode.IsSpace(r)
	}
	return isASCIIPunctuation(r) || unicode.IsSpace(r)
}

func isASCIIPunctuation(r rune) bool {
	return (r >= 0x21 && r <= 0x2F) ||
		(r >= 0x3A && r <= 0x40) ||
		(r >= 0x5B && r <= 0x60) ||
		(r >= 0x7B && r <= 0x7E)
}

// SmartCaseEq implements smart-case/smart-base equality: a lowercase query
// character matches its uppercase and accented variants, an uppercase query
// character matches only uppercase variants, and an accented query
// character matches only accented variants sharing its base.
func (c Character) SmartCaseEq(other Character) bool {
	if c.IsBase && c.Base == other.Base && (!c.IsUppercase || other.IsUppercase) {
		return true
	}
	if !c.IsUppercase && c.FoldedCase == other.FoldedCase {
		return true
	}
	return c.Normal == other.Normal
}
