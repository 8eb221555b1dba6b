package document

import (
	"testing"
)

func TestEncodingByID(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
	}{
		{"utf-8", "UTF-8"},
		{"UTF-8", "UTF-8"},
		{"utf-16-le", "UTF-16 LE"},
		{"windows-1252", "Windows-1252"},
		{"euc-kr", "EUC-KR"},
		{"nonexistent", ""},
	}
	for _, tt := range tests {
		enc := EncodingByID(tt.id)
		got := ""
		if enc != nil {
			got = enc.Name
		}
		if got != tt.wantName {
			t.Errorf("EncodingByID(%q) = %q, want %q", tt.id, got, tt.wantName)
		}
	}
}

func TestEncodingByName(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
	}{
		{"utf8", "utf-8"},
		{"Shift_JIS", "shift-jis"},
		{"GB2312", "gbk"},
		{"latin1", "iso-8859-1"},
		{"CP1252", "windows-1252"},
		{"nonexistent", ""},
	}
	for _, tt := range tests {
		enc := EncodingByName(tt.name)
		got := ""
		if enc != nil {
			got = enc.ID
		}
		if got != tt.wantID {
			t.Errorf("EncodingByName(%q) = %q, want %q", tt.name, got, tt.wantID)
		}
	}
}

func TestDetectEncodingBOM(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		wantID string
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8-bom"},
		{"UTF-16 LE BOM", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "utf-16-le"},
		{"UTF-16 BE BOM", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "utf-16-be"},
		{"ASCII", []byte("hello"), "utf-8"},
		{"UTF-8", []byte("café"), "utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEncoding(tt.data).ID; got != tt.wantID {
				t.Errorf("DetectEncoding() = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestDetectEncodingInvalidUTF8(t *testing.T) {
	enc := DetectEncoding([]byte{'c', 'a', 'f', 0xe9, ' ', 'a', 'u', ' ', 'l', 'a', 'i', 't'})
	if enc == nil || enc.Decoder == nil {
		t.Fatalf("DetectEncoding() = %v, want a single-byte decoder", enc)
	}
	if _, err := Decode([]byte{'c', 'a', 'f', 0xe9}, enc); err != nil {
		t.Errorf("Decode() error = %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		encID string
		input []byte
		want  string
	}{
		{"UTF-8 passthrough", "utf-8", []byte("hello"), "hello"},
		{"UTF-8 BOM strip", "utf-8-bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi"},
		{"UTF-16 LE", "utf-16-le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"UTF-16 BE", "utf-16-be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"ISO-8859-1", "iso-8859-1", []byte{'c', 'a', 'f', 0xe9}, "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input, EncodingByID(tt.encID))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
