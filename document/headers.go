package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/minimap"
)

// regionPattern matches "#region Title" in its common comment dressings:
// C#, "// #region" and "<!-- #region -->".
const regionPattern = `^\s*(?://|<!--|#|--)?\s*#region\b\s*(?<label>.*?)\s*(?:-->)?\s*$`

// User patterns run per line; a pathological one must not hang the viewer.
const headerMatchTimeout = 50 * time.Millisecond

// HeaderOptions selects which comment conventions produce section headers.
type HeaderOptions struct {
	Mark      bool
	Region    bool
	MarkRegex string // Empty uses the default MARK pattern
}

// SectionHeader is a labelled line shown as a header in the minimap.
type SectionHeader struct {
	Line      int
	Label     string
	Separator bool
}

// headerFinder scans lines for section header comments.
type headerFinder struct {
	mark   *regexp2.Regexp
	region *regexp2.Regexp
}

func newHeaderFinder(opts HeaderOptions) (*headerFinder, error) {
	f := &headerFinder{}
	if opts.Mark {
		pattern := opts.MarkRegex
		if pattern == "" {
			pattern = config.DefaultMarkSectionHeaderRegex
		}
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("mark section header regex: %w", err)
		}
		re.MatchTimeout = headerMatchTimeout
		f.mark = re
	}
	if opts.Region {
		f.region = regexp2.MustCompile(regionPattern, regexp2.None)
		f.region.MatchTimeout = headerMatchTimeout
	}
	return f, nil
}

// find returns the header on line, if any. MARK comments take precedence
// over regions.
func (f *headerFinder) find(line int, text string) (SectionHeader, bool) {
	if f == nil {
		return SectionHeader{}, false
	}
	if f.mark != nil {
		if m, err := f.mark.FindStringMatch(text); err == nil && m != nil {
			h := SectionHeader{Line: line, Label: groupText(m, "label")}
			h.Separator = groupText(m, "separator") != ""
			if h.Label != "" || h.Separator {
				return h, true
			}
		}
	}
	if f.region != nil {
		if m, err := f.region.FindStringMatch(text); err == nil && m != nil {
			if label := groupText(m, "label"); label != "" {
				return SectionHeader{Line: line, Label: label}, true
			}
		}
	}
	return SectionHeader{}, false
}

func groupText(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil {
		return ""
	}
	return strings.TrimSpace(g.String())
}

// scan returns every header in lines, in line order.
func (f *headerFinder) scan(lines []string) []SectionHeader {
	var out []SectionHeader
	for i, text := range lines {
		if h, ok := f.find(i+1, text); ok {
			out = append(out, h)
		}
	}
	return out
}

// decoration turns h into a minimap section header decoration.
func (h SectionHeader) decoration(maxColumn int) minimap.Decoration {
	style := minimap.SectionHeaderNormal
	if h.Separator {
		style = minimap.SectionHeaderUnderlined
	}
	return minimap.Decoration{
		Range:         minimap.Range{StartLine: h.Line, StartColumn: 1, EndLine: h.Line, EndColumn: maxColumn},
		SectionHeader: style,
		Label:         h.Label,
	}
}
