// Package trigger implements the per-filetype completion-trigger table:
// parsing a trigger configuration into compiled regex sets, and testing
// whether a trigger fires at the cursor.
package trigger

import (
	"regexp"
	"strings"
)

const rawRegexPrefix = "re!"

// PatternSet is the set of trigger regexes registered for one filetype. Go
// has no equivalent to Rust's regex::RegexSet, so membership is tracked as
// a slice of individually compiled patterns; MatchesInRange needs each
// hit's own end offset anyway, which a combined set wouldn't expose.
type PatternSet struct {
	patterns []*regexp.Regexp
}

func newPatternSet() *PatternSet {
	return &PatternSet{}
}

func (ps *PatternSet) add(re *regexp.Regexp) {
	ps.patterns = append(ps.patterns, re)
}

// MatchesInRange reports whether any pattern in the set has a match inside
// line whose end offset falls within [startByte, columnByte].
func (ps *PatternSet) MatchesInRange(line string, startByte, columnByte int) bool {
	for _, re := range ps.patterns {
		for _, hit := range re.FindAllStringIndex(line, -1) {
			end := hit[1]
			if startByte <= end && end <= columnByte {
				return true
			}
		}
	}
	return false
}

// compilePattern turns one trigger string into a regex: a "re!"-prefixed
// string is a raw regex, anything else is escaped to match literally.
func compilePattern(raw string) *regexp.Regexp {
	if strings.HasPrefix(raw, rawRegexPrefix) {
		return regexp.MustCompile(raw[len(rawRegexPrefix):])
	}
	return regexp.MustCompile(regexp.QuoteMeta(raw))
}

// ParseTriggers builds the filetype -> PatternSet table from a sequence of
// (comma-separated filetype key -> trigger strings) maps. Multiple input
// maps accumulate into the same filetype's set. When filetypeFilter is
// non-empty, only filetypes it names are kept; an empty filter keeps
// everything.
func ParseTriggers(triggerMaps []map[string][]string, filetypeFilter map[string]bool) map[string]*PatternSet {
	table := make(map[string]*PatternSet)

	for _, triggerMap := range triggerMaps {
		for key, patterns := range triggerMap {
			for _, filetype := range strings.Split(key, ",") {
				if len(filetypeFilter) > 0 && !filetypeFilter[filetype] {
					continue
				}

				ps, ok := table[filetype]
				if !ok {
					ps = newPatternSet()
					table[filetype] = ps
				}
				for _, p := range patterns {
					ps.add(compilePattern(p))
				}
			}
		}
	}

	return table
}

// MatchesForFiletype reports whether a trigger registered for filetype
// fires given the current line and the identifier-start/cursor byte
// offsets. L is line truncated to columnByte when columnByte is a valid
// offset into line, else the whole line; a hit counts when its end offset
// falls in [startByte, columnByte] — everything strictly after startByte is
// identifier-bearing, so a trigger whose tail lands inside or exactly at
// that boundary fires.
func MatchesForFiletype(table map[string]*PatternSet, filetype, line string, startByte, columnByte int) bool {
	ps, ok := table[filetype]
	if !ok {
		return false
	}

	l := line
	if columnByte >= 0 && columnByte <= len(line) {
		l = line[:columnByte]
	}

	return ps.MatchesInRange(l, startByte, columnByte)
}
