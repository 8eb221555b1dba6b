package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is a character encoding a file can be decoded from
type Encoding struct {
	Name    string            // Display name
	ID      string            // Internal identifier
	Decoder encoding.Encoding // nil for UTF-8
	Aliases []string          // Charset names reported by chardet
}

// Encodings lists every encoding files are decoded from
var Encodings = []*Encoding{
	{Name: "UTF-8", ID: "utf-8", Aliases: []string{"UTF-8", "utf8"}},
	{Name: "UTF-8 BOM", ID: "utf-8-bom"},
	{Name: "UTF-16 LE", ID: "utf-16-le", Decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), Aliases: []string{"UTF-16LE"}},
	{Name: "UTF-16 BE", ID: "utf-16-be", Decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM), Aliases: []string{"UTF-16BE"}},
	{Name: "ISO-8859-1", ID: "iso-8859-1", Decoder: charmap.ISO8859_1, Aliases: []string{"ISO-8859-1", "latin1"}},
	{Name: "Windows-1252", ID: "windows-1252", Decoder: charmap.Windows1252, Aliases: []string{"windows-1252", "CP1252"}},
	{Name: "ISO-8859-15", ID: "iso-8859-15", Decoder: charmap.ISO8859_15, Aliases: []string{"ISO-8859-15", "latin9"}},
	{Name: "Shift-JIS", ID: "shift-jis", Decoder: japanese.ShiftJIS, Aliases: []string{"Shift_JIS", "SJIS"}},
	{Name: "EUC-JP", ID: "euc-jp", Decoder: japanese.EUCJP, Aliases: []string{"EUC-JP"}},
	{Name: "GBK", ID: "gbk", Decoder: simplifiedchinese.GBK, Aliases: []string{"GBK", "GB2312", "GB-2312"}},
	{Name: "GB18030", ID: "gb18030", Decoder: simplifiedchinese.GB18030, Aliases: []string{"GB18030"}},
	{Name: "EUC-KR", ID: "euc-kr", Decoder: korean.EUCKR, Aliases: []string{"EUC-KR"}},
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// EncodingByID returns an encoding by its ID, or nil
func EncodingByID(id string) *Encoding {
	for _, enc := range Encodings {
		if strings.EqualFold(enc.ID, id) {
			return enc
		}
	}
	return nil
}

// EncodingByName returns an encoding by name, ID or alias, or nil
func EncodingByName(name string) *Encoding {
	for _, enc := range Encodings {
		if strings.EqualFold(enc.Name, name) || strings.EqualFold(enc.ID, name) {
			return enc
		}
		for _, alias := range enc.Aliases {
			if strings.EqualFold(alias, name) {
				return enc
			}
		}
	}
	return nil
}

// DetectEncoding guesses the encoding of data. BOMs win, then valid UTF-8,
// then chardet. Unknown charsets fall back to Latin-1, which decodes any
// byte sequence.
func DetectEncoding(data []byte) *Encoding {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return EncodingByID("utf-8-bom")
	case bytes.HasPrefix(data, utf16BEBOM):
		return EncodingByID("utf-16-be")
	case bytes.HasPrefix(data, utf16LEBOM):
		return EncodingByID("utf-16-le")
	case utf8.Valid(data):
		return EncodingByID("utf-8")
	}

	detected, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil && detected != nil {
		if enc := EncodingByName(detected.Charset); enc != nil {
			return enc
		}
	}
	return EncodingByID("iso-8859-1")
}

// Decode converts data from enc to UTF-8, dropping any byte order mark
func Decode(data []byte, enc *Encoding) (string, error) {
	if enc == nil || enc.Decoder == nil {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	switch enc.ID {
	case "utf-16-le":
		data = bytes.TrimPrefix(data, utf16LEBOM)
	case "utf-16-be":
		data = bytes.TrimPrefix(data, utf16BEBOM)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.Decoder.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc.Name, err)
	}
	return string(out), nil
}
