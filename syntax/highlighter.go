package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ColorID identifies a token color class. The palette that turns ids into
// actual colors is resolved from the theme by the renderer.
type ColorID uint8

const (
	ColorDefault ColorID = iota
	ColorKeyword
	ColorString
	ColorComment
	ColorNumber
	ColorOperator
	ColorFunction
	ColorType
	ColorError

	NumColors = int(ColorError) + 1
)

var colorNames = [NumColors]string{
	"default", "keyword", "string", "comment", "number", "operator", "function", "type", "error",
}

func (c ColorID) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Token colors a run of runes ending (exclusive) at End.
type Token struct {
	End   int
	Color ColorID
}

// Highlighter splits source text into colored tokens
type Highlighter struct {
	lexer   chroma.Lexer
	enabled bool
}

// New creates a new Highlighter for the given filename
func New(filename string) *Highlighter {
	h := &Highlighter{enabled: true}
	h.SetFile(filename)
	return h
}

// SetFile updates the lexer based on the filename
func (h *Highlighter) SetFile(filename string) {
	if filename == "" {
		h.lexer = nil
		return
	}
	h.lexer = lexers.Match(filename)
	if h.lexer != nil {
		h.lexer = chroma.Coalesce(h.lexer)
	}
}

// SetEnabled enables or disables syntax highlighting
func (h *Highlighter) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// Enabled returns whether highlighting is enabled
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// HasLexer returns true if a lexer is available for the current file
func (h *Highlighter) HasLexer() bool {
	return h.lexer != nil
}

// LexerName returns the name of the active lexer, or "" without one.
func (h *Highlighter) LexerName() string {
	if h.lexer == nil {
		return ""
	}
	return h.lexer.Config().Name
}

// LineTokens tokenizes a single line on its own.
// Returns nil if highlighting is disabled or no lexer is available
func (h *Highlighter) LineTokens(line string) []Token {
	if !h.enabled || h.lexer == nil {
		return nil
	}
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}
	var b tokenBuilder
	for _, tok := range it.Tokens() {
		b.add(strings.TrimSuffix(tok.Value, "\n"), ClassifyToken(tok.Type))
	}
	return b.tokens
}

// Tokens tokenizes lines as one text, so constructs spanning lines such as
// block comments are colored correctly, and returns the tokens of each
// line. Returns nil if highlighting is disabled or no lexer is available.
func (h *Highlighter) Tokens(lines []string) [][]Token {
	if !h.enabled || h.lexer == nil {
		return nil
	}
	it, err := h.lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil
	}

	out := make([][]Token, len(lines))
	line := 0
	var b tokenBuilder
	for _, tok := range it.Tokens() {
		color := ClassifyToken(tok.Type)
		value := tok.Value
		for {
			i := strings.IndexByte(value, '\n')
			if i < 0 {
				b.add(value, color)
				break
			}
			b.add(value[:i], color)
			if line < len(out) {
				out[line] = b.tokens
			}
			line++
			b = tokenBuilder{}
			value = value[i+1:]
		}
	}
	if line < len(out) {
		out[line] = b.tokens
	}
	return out
}

// tokenBuilder accumulates tokens for one line, merging adjacent runs of
// the same color.
type tokenBuilder struct {
	tokens []Token
	pos    int
}

func (b *tokenBuilder) add(value string, color ColorID) {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return
	}
	b.pos += n
	if last := len(b.tokens) - 1; last >= 0 && b.tokens[last].Color == color {
		b.tokens[last].End = b.pos
		return
	}
	b.tokens = append(b.tokens, Token{End: b.pos, Color: color})
}

// ColorAt returns the color of the rune at col, or ColorDefault past the
// last token.
func ColorAt(tokens []Token, col int) ColorID {
	for _, t := range tokens {
		if col < t.End {
			return t.Color
		}
	}
	return ColorDefault
}

// ClassifyToken maps a chroma token type to a color class
func ClassifyToken(t chroma.TokenType) ColorID {
	switch {
	// Keywords
	case t == chroma.Keyword,
		t == chroma.KeywordConstant,
		t == chroma.KeywordDeclaration,
		t == chroma.KeywordNamespace,
		t == chroma.KeywordPseudo,
		t == chroma.KeywordReserved,
		t == chroma.KeywordType:
		return ColorKeyword

	case t.InSubCategory(chroma.String):
		return ColorString

	case t.InCategory(chroma.Comment):
		return ColorComment

	case t.InSubCategory(chroma.Number):
		return ColorNumber

	// Operators
	case t == chroma.Operator,
		t == chroma.OperatorWord:
		return ColorOperator

	// Functions
	case t == chroma.NameFunction,
		t == chroma.NameFunctionMagic:
		return ColorFunction

	// Types/Classes
	case t == chroma.NameClass,
		t == chroma.NameBuiltin,
		t == chroma.NameBuiltinPseudo,
		t == chroma.GenericHeading,
		t == chroma.GenericSubheading:
		return ColorType

	// Constants
	case t == chroma.NameConstant:
		return ColorNumber // Same as numbers

	// Errors
	case t == chroma.Error,
		t == chroma.GenericError:
		return ColorError

	default:
		return ColorDefault
	}
}
