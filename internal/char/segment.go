package char

import "github.com/clipperhouse/uax29/v2/graphemes"

// Segment splits text into user-perceived characters (UAX #29 grapheme
// clusters) rather than raw runes, so combining marks and multi-codepoint
// emoji count as one Character apiece.
func Segment(text string) []string {
	if text == "" {
		return nil
	}
	seg := graphemes.FromString(text)
	out := make([]string, 0, len(text))
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// SegmentToCharacters splits text into graphemes and constructs a Character
// for each one, discarding any (empty-grapheme) construction errors — the
// segmenter never yields empty segments for non-empty input.
func SegmentToCharacters(text string) []Character {
	graphemeSlice := Segment(text)
	out := make([]Character, 0, len(graphemeSlice))
	for _, g := range graphemeSlice {
		c, err := New(g)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
