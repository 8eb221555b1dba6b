package document

import (
	"unicode"

	"github.com/cornish/textivus-minimap/minimap"
)

// SetQuery sets the search text highlighted in the minimap. Matching is
// case-insensitive. Returns whether the query changed.
func (d *Document) SetQuery(q string) bool {
	runes := foldRunes(q)
	if string(runes) == string(d.query) {
		return false
	}
	d.query = runes
	return true
}

// Query returns the case-folded search text.
func (d *Document) Query() string { return string(d.query) }

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// matches returns the match columns of the query on line as 1-based,
// end-exclusive column pairs. Matches do not overlap.
func (d *Document) matches(line int) [][2]int {
	q := d.query
	if len(q) == 0 {
		return nil
	}
	text := foldRunes(d.LineContent(line))
	var out [][2]int
	for i := 0; i+len(q) <= len(text); {
		if string(text[i:i+len(q)]) == string(q) {
			out = append(out, [2]int{i + 1, i + 1 + len(q)})
			i += len(q)
			continue
		}
		i++
	}
	return out
}

// LineMatches returns the query matches on line for the text view.
func (d *Document) LineMatches(line int) [][2]int { return d.matches(line) }

func (d *Document) appendMatches(out []minimap.Decoration, first, last int) []minimap.Decoration {
	if len(d.query) == 0 || d.colors.FindMatch.Transparent() {
		return out
	}
	for line := first; line <= last; line++ {
		for _, m := range d.matches(line) {
			out = append(out, minimap.Decoration{
				Range:    minimap.Range{StartLine: line, StartColumn: m[0], EndLine: line, EndColumn: m[1]},
				ZIndex:   zMatch,
				Color:    d.colors.FindMatch,
				Position: minimap.PositionInline,
			})
		}
	}
	return out
}

// FindNext selects the first match starting after line:column, wrapping
// around the end of the document. Returns false when nothing matches.
func (d *Document) FindNext(line, column int) (minimap.Range, bool) {
	n := len(d.lines)
	if len(d.query) == 0 || n == 0 {
		return minimap.Range{}, false
	}
	line = min(max(line, 1), n)
	for i := 0; i <= n; i++ {
		l := (line-1+i)%n + 1
		for _, m := range d.matches(l) {
			if i == 0 && m[0] <= column {
				continue
			}
			if i == n && m[0] > column {
				break
			}
			r := minimap.Range{StartLine: l, StartColumn: m[0], EndLine: l, EndColumn: m[1]}
			d.selections = []minimap.Range{r}
			return r, true
		}
	}
	return minimap.Range{}, false
}

// MatchCount counts matches in the whole document.
func (d *Document) MatchCount() int {
	if len(d.query) == 0 {
		return 0
	}
	count := 0
	for line := 1; line <= len(d.lines); line++ {
		count += len(d.matches(line))
	}
	return count
}
