package minimap

import (
	"math"

	"github.com/cornish/textivus-minimap/syntax"
)

// Range is a 1-based, end-exclusive span of text. Columns count runes.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// LineEnd as an end column reaches the end of the line, whatever its length.
const LineEnd = math.MaxInt32

// LineRange returns a range covering whole lines [start, end].
func LineRange(start, end int) Range {
	return Range{StartLine: start, StartColumn: 1, EndLine: end, EndColumn: LineEnd}
}

// Position is where a decoration is drawn in the minimap.
type Position int

const (
	PositionInline Position = iota // Over the text, plus a line highlight
	PositionGutter                 // As a marker in the left gutter
)

// SectionHeaderStyle marks a decoration as a section header label.
type SectionHeaderStyle int

const (
	SectionHeaderNone SectionHeaderStyle = iota
	SectionHeaderNormal
	SectionHeaderUnderlined
)

// Decoration is a colored range shown on the minimap.
type Decoration struct {
	Range         Range
	ZIndex        int
	Color         RGBA8
	Position      Position
	SectionHeader SectionHeaderStyle
	Label         string // Section header text
}

// LineData is the content of one line plus its token colors.
type LineData struct {
	Content string
	Tokens  []syntax.Token
}

// Model is the document the minimap reads from. Line numbers are 1-based
// and always valid for the current document.
type Model interface {
	LineCount() int
	LineContent(line int) string
	LineMaxColumn(line int) int
	// LinesRenderingData returns data for lines [start, end]. Entries whose
	// needed flag is false may be nil.
	LinesRenderingData(start, end int, needed []bool) []*LineData
	DecorationsInRange(r Range) []Decoration
	Selections() []Range
}

// TokenRange is a span of lines whose tokens changed.
type TokenRange struct {
	From, To int
}
