package document

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cornish/textivus-minimap/minimap"
	"github.com/cornish/textivus-minimap/syntax"
)

// EditKind is the kind of a line edit.
type EditKind int

const (
	EditChanged EditKind = iota
	EditInserted
	EditDeleted
)

func (k EditKind) String() string {
	switch k {
	case EditChanged:
		return "changed"
	case EditInserted:
		return "inserted"
	case EditDeleted:
		return "deleted"
	}
	return "unknown"
}

// Edit is a run of lines [From, To] that changed. Line numbers refer to
// the document as it is after every earlier edit in the same Change.
type Edit struct {
	Kind     EditKind
	From, To int
}

// maxEdits is the number of edits past which a Change asks for a flush.
const maxEdits = 256

// Change describes how SetText or Reload altered the document.
type Change struct {
	Edits []Edit
	// Tokens lists unchanged lines whose token colors changed, in final
	// line numbers.
	Tokens []minimap.TokenRange
	// Flush is set when the edits are too many to replay.
	Flush bool
}

// Empty reports whether nothing changed.
func (c Change) Empty() bool {
	return !c.Flush && len(c.Edits) == 0 && len(c.Tokens) == 0
}

// Apply reports the change to a minimap in order.
func (c Change) Apply(m *minimap.Minimap) {
	if c.Flush {
		m.OnFlushed()
		return
	}
	for _, e := range c.Edits {
		switch e.Kind {
		case EditChanged:
			m.OnLinesChanged(e.From, e.To-e.From+1)
		case EditInserted:
			m.OnLinesInserted(e.From, e.To)
		case EditDeleted:
			m.OnLinesDeleted(e.From, e.To)
		}
	}
	if len(c.Tokens) > 0 {
		m.OnTokensChanged(c.Tokens)
	}
	m.OnDecorationsChanged()
}

// Reload re-reads the document from its file.
func (d *Document) Reload() (Change, error) {
	if d.path == "" {
		return Change{}, errors.New("document has no file")
	}
	text, enc, err := ReadFile(d.path)
	if err != nil {
		return Change{}, err
	}
	d.encoding = enc
	return d.SetText(text), nil
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// SetText replaces the document text and describes the difference as line
// edits. Lines touched since the first load get gutter markers.
func (d *Document) SetText(text string) Change {
	oldLines, oldTokens, oldMarks := d.lines, d.tokens, d.marks
	newLines := splitLines(text)
	newTokens := d.highlighter.Tokens(newLines)

	dmp := diffmatchpatch.New()
	a, b, _ := dmp.DiffLinesToRunes(joinLines(oldLines), joinLines(newLines))
	diffs := dmp.DiffMainRunes(a, b, false)

	var change Change
	newMarks := make([]lineMark, 0, len(newLines))
	oldLine, newLine := 1, 1
	for i := 0; i < len(diffs); {
		if diffs[i].Type == diffmatchpatch.DiffEqual {
			// Each rune of the diff text stands for one line.
			n := utf8.RuneCountInString(diffs[i].Text)
			newMarks = append(newMarks, oldMarks[oldLine-1:oldLine-1+n]...)
			change.Tokens = appendTokenChanges(change.Tokens, oldTokens, newTokens, oldLine, newLine, n)
			oldLine += n
			newLine += n
			i++
			continue
		}

		deleted, inserted := 0, 0
		for ; i < len(diffs) && diffs[i].Type != diffmatchpatch.DiffEqual; i++ {
			n := utf8.RuneCountInString(diffs[i].Text)
			if diffs[i].Type == diffmatchpatch.DiffDelete {
				deleted += n
			} else {
				inserted += n
			}
		}

		changed := min(deleted, inserted)
		if changed > 0 {
			change.Edits = append(change.Edits, Edit{EditChanged, newLine, newLine + changed - 1})
			for j := 0; j < changed; j++ {
				mark := oldMarks[oldLine-1+j]
				if mark != markAdded {
					mark = markModified
				}
				newMarks = append(newMarks, mark)
			}
		}
		if deleted > changed {
			change.Edits = append(change.Edits, Edit{EditDeleted, newLine + changed, newLine + deleted - 1})
		}
		if inserted > changed {
			change.Edits = append(change.Edits, Edit{EditInserted, newLine + changed, newLine + inserted - 1})
			for j := changed; j < inserted; j++ {
				newMarks = append(newMarks, markAdded)
			}
		}
		oldLine += deleted
		newLine += inserted
	}

	d.lines = newLines
	d.tokens = newTokens
	d.marks = newMarks
	d.headers = d.finder.scan(newLines)
	d.selections = clampSelections(d.selections, len(newLines))
	d.version++

	if len(change.Edits) > maxEdits {
		return Change{Flush: true}
	}
	return change
}

// appendTokenChanges compares the tokens of n unchanged lines and records
// runs whose colors differ.
func appendTokenChanges(out []minimap.TokenRange, oldTokens, newTokens [][]syntax.Token, oldLine, newLine, n int) []minimap.TokenRange {
	for j := 0; j < n; j++ {
		if slices.Equal(tokensAt(oldTokens, oldLine+j), tokensAt(newTokens, newLine+j)) {
			continue
		}
		line := newLine + j
		if last := len(out) - 1; last >= 0 && out[last].To == line-1 {
			out[last].To = line
			continue
		}
		out = append(out, minimap.TokenRange{From: line, To: line})
	}
	return out
}

func tokensAt(tokens [][]syntax.Token, line int) []syntax.Token {
	if line < 1 || line > len(tokens) {
		return nil
	}
	return tokens[line-1]
}

func clampSelections(sels []minimap.Range, lineCount int) []minimap.Range {
	out := sels[:0]
	for _, s := range sels {
		if s.EndLine <= lineCount {
			out = append(out, s)
		}
	}
	return out
}
