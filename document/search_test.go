package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cornish/textivus-minimap/minimap"
)

func TestSetQuery(t *testing.T) {
	d := mustNew(t, "a.txt", "foo bar Foo\nnothing\nxfoo")
	if !d.SetQuery("foo") {
		t.Error("SetQuery(foo) = false, want true")
	}
	if d.SetQuery("FOO") {
		t.Error("SetQuery(FOO) after foo = true, want false")
	}
	if got := d.MatchCount(); got != 3 {
		t.Errorf("MatchCount() = %d, want 3", got)
	}
	if got, want := d.matches(1), [][2]int{{1, 4}, {9, 12}}; !cmp.Equal(got, want) {
		t.Errorf("matches(1) = %v, want %v", got, want)
	}
	d.SetQuery("")
	if got := d.MatchCount(); got != 0 {
		t.Errorf("MatchCount() with no query = %d, want 0", got)
	}
}

func TestMatchesDoNotOverlap(t *testing.T) {
	d := mustNew(t, "a.txt", "aaaaa")
	d.SetQuery("aa")
	if got, want := d.matches(1), [][2]int{{1, 3}, {3, 5}}; !cmp.Equal(got, want) {
		t.Errorf("matches(1) = %v, want %v", got, want)
	}
}

func TestFindNext(t *testing.T) {
	d := mustNew(t, "a.txt", "foo bar Foo\nnothing\nxfoo")
	d.SetQuery("foo")

	tests := []struct {
		line, column int
		want         minimap.Range
	}{
		{1, 0, minimap.Range{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 4}},
		{1, 1, minimap.Range{StartLine: 1, StartColumn: 9, EndLine: 1, EndColumn: 12}},
		{1, 9, minimap.Range{StartLine: 3, StartColumn: 2, EndLine: 3, EndColumn: 5}},
		{2, 0, minimap.Range{StartLine: 3, StartColumn: 2, EndLine: 3, EndColumn: 5}},
		{3, 2, minimap.Range{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 4}},
		{99, 99, minimap.Range{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 4}},
	}
	for _, tt := range tests {
		got, ok := d.FindNext(tt.line, tt.column)
		if !ok || got != tt.want {
			t.Errorf("FindNext(%d, %d) = %+v, %v, want %+v, true", tt.line, tt.column, got, ok, tt.want)
			continue
		}
		if diff := cmp.Diff([]minimap.Range{tt.want}, d.Selections()); diff != "" {
			t.Errorf("Selections() after FindNext(%d, %d) mismatch (-want +got):\n%s", tt.line, tt.column, diff)
		}
	}

	d.SetQuery("absent")
	if _, ok := d.FindNext(1, 0); ok {
		t.Error("FindNext() for an absent query = true, want false")
	}
}

func TestFindNextSingleMatchWraps(t *testing.T) {
	d := mustNew(t, "a.txt", "one\ntwo target\nthree")
	d.SetQuery("target")
	want := minimap.Range{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 11}
	for _, from := range [][2]int{{1, 0}, {2, 5}, {3, 1}} {
		if got, ok := d.FindNext(from[0], from[1]); !ok || got != want {
			t.Errorf("FindNext(%d, %d) = %+v, %v, want %+v, true", from[0], from[1], got, ok, want)
		}
	}
}
