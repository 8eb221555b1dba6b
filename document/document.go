// Package document holds the text shown next to the minimap and answers
// the minimap's questions about it: line content, token colors, search
// matches, gutter change markers and section headers.
//
// A Document is not safe for concurrent use. The viewer owns it and
// mutates it from its update loop only; the file watcher just signals.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/minimap"
	"github.com/cornish/textivus-minimap/syntax"
)

// Options controls what a Document derives from its text.
type Options struct {
	SyntaxHighlight bool
	Headers         HeaderOptions
}

// OptionsFromConfig extracts document options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SyntaxHighlight: cfg.Editor.SyntaxHighlight,
		Headers: HeaderOptions{
			Mark:      cfg.Minimap.ShowMarkSectionHeaders,
			Region:    cfg.Minimap.ShowRegionSectionHeaders,
			MarkRegex: cfg.Minimap.MarkSectionHeaderRegex,
		},
	}
}

// Colors are the decoration colors a Document hands to the minimap.
type Colors struct {
	FindMatch minimap.RGBA8
	Modified  minimap.RGBA8
	Added     minimap.RGBA8
}

// ThemeColors resolves decoration colors from a theme.
func ThemeColors(theme config.Theme) Colors {
	return Colors{
		FindMatch: minimap.ParseColorOr(theme.Minimap.FindMatch, minimap.RGBA8{R: 209, G: 134, B: 22, A: 255}),
		Modified:  minimap.ParseColorOr(theme.Minimap.GutterModified, minimap.RGBA8{R: 27, G: 129, B: 168, A: 255}),
		Added:     minimap.ParseColorOr(theme.Minimap.GutterAdded, minimap.RGBA8{R: 72, G: 126, B: 2, A: 255}),
	}
}

// lineMark records how a line differs from the text first loaded.
type lineMark uint8

const (
	markNone lineMark = iota
	markModified
	markAdded
)

// Decoration stacking order; higher paints later.
const (
	zGutter = 0
	zMatch  = 10
)

// Document is a read-only text buffer that can be reloaded from disk.
type Document struct {
	path     string
	name     string
	encoding *Encoding

	lines   []string
	tokens  [][]syntax.Token
	marks   []lineMark
	headers []SectionHeader
	version int

	highlighter *syntax.Highlighter
	finder      *headerFinder
	colors      Colors

	query      []rune
	selections []minimap.Range
}

// New creates a document named name holding text. The name picks the
// syntax highlighter.
func New(name, text string, opts Options) (*Document, error) {
	finder, err := newHeaderFinder(opts.Headers)
	if err != nil {
		return nil, err
	}
	h := syntax.New(name)
	h.SetEnabled(opts.SyntaxHighlight)
	d := &Document{
		name:        name,
		encoding:    EncodingByID("utf-8"),
		highlighter: h,
		finder:      finder,
	}
	d.load(splitLines(text))
	return d, nil
}

// Open reads path, detecting its encoding, and creates a document for it.
func Open(path string, opts Options) (*Document, error) {
	text, enc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := New(filepath.Base(path), text, opts)
	if err != nil {
		return nil, err
	}
	d.path = path
	d.encoding = enc
	return d, nil
}

// ReadFile reads and decodes a text file.
func ReadFile(path string) (string, *Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	enc := DetectEncoding(data)
	text, err := Decode(data, enc)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return text, enc, nil
}

// splitLines splits text on newlines. A trailing newline leaves an empty
// last line, so a document always has at least one line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func (d *Document) load(lines []string) {
	d.lines = lines
	d.tokens = d.highlighter.Tokens(lines)
	d.marks = make([]lineMark, len(lines))
	d.headers = d.finder.scan(lines)
	d.selections = nil
	d.version++
}

// Path returns the file the document was read from, or "".
func (d *Document) Path() string { return d.path }

// Name returns the display name.
func (d *Document) Name() string { return d.name }

// Encoding returns the encoding the file was decoded from.
func (d *Document) Encoding() *Encoding { return d.encoding }

// Version increases every time the text changes.
func (d *Document) Version() int { return d.version }

// LexerName returns the syntax highlighter in use, or "".
func (d *Document) LexerName() string { return d.highlighter.LexerName() }

// SectionHeaders returns the headers found in the document.
func (d *Document) SectionHeaders() []SectionHeader { return d.headers }

// SetColors replaces the decoration colors.
func (d *Document) SetColors(c Colors) { d.colors = c }

// SetSyntaxHighlight turns token coloring on or off and retokenizes.
func (d *Document) SetSyntaxHighlight(enabled bool) {
	if d.highlighter.Enabled() == enabled {
		return
	}
	d.highlighter.SetEnabled(enabled)
	d.tokens = d.highlighter.Tokens(d.lines)
}

// LineCount implements minimap.Model.
func (d *Document) LineCount() int { return len(d.lines) }

// LineContent implements minimap.Model.
func (d *Document) LineContent(line int) string {
	if line < 1 || line > len(d.lines) {
		return ""
	}
	return d.lines[line-1]
}

// LineMaxColumn implements minimap.Model.
func (d *Document) LineMaxColumn(line int) int {
	return utf8.RuneCountInString(d.LineContent(line)) + 1
}

// LineTokens returns the token colors of line, nil when unhighlighted.
func (d *Document) LineTokens(line int) []syntax.Token {
	if line < 1 || line > len(d.tokens) {
		return nil
	}
	return d.tokens[line-1]
}

// LinesRenderingData implements minimap.Model.
func (d *Document) LinesRenderingData(start, end int, needed []bool) []*minimap.LineData {
	out := make([]*minimap.LineData, max(0, end-start+1))
	for i := range out {
		if needed != nil && (i >= len(needed) || !needed[i]) {
			continue
		}
		line := start + i
		out[i] = &minimap.LineData{Content: d.LineContent(line), Tokens: d.LineTokens(line)}
	}
	return out
}

// Selections implements minimap.Model.
func (d *Document) Selections() []minimap.Range { return d.selections }

// SetSelections replaces the selections.
func (d *Document) SetSelections(sels []minimap.Range) { d.selections = sels }

// DecorationsInRange implements minimap.Model. It returns the section
// headers, gutter change markers and search matches on the lines of r.
func (d *Document) DecorationsInRange(r minimap.Range) []minimap.Decoration {
	first := max(1, r.StartLine)
	last := min(len(d.lines), r.EndLine)
	if first > last {
		return nil
	}

	var out []minimap.Decoration
	i := sort.Search(len(d.headers), func(i int) bool { return d.headers[i].Line >= first })
	for ; i < len(d.headers) && d.headers[i].Line <= last; i++ {
		h := d.headers[i]
		out = append(out, h.decoration(d.LineMaxColumn(h.Line)))
	}
	out = d.appendMarks(out, first, last)
	out = d.appendMatches(out, first, last)
	return out
}

// appendMarks adds one gutter decoration per run of equally marked lines.
func (d *Document) appendMarks(out []minimap.Decoration, first, last int) []minimap.Decoration {
	for line := first; line <= last; {
		mark := d.marks[line-1]
		end := line
		for end < last && d.marks[end] == mark {
			end++
		}
		if mark != markNone {
			color := d.colors.Modified
			if mark == markAdded {
				color = d.colors.Added
			}
			out = append(out, minimap.Decoration{
				Range:    minimap.Range{StartLine: line, StartColumn: 1, EndLine: end, EndColumn: d.LineMaxColumn(end)},
				ZIndex:   zGutter,
				Color:    color,
				Position: minimap.PositionGutter,
			})
		}
		line = end + 1
	}
	return out
}
