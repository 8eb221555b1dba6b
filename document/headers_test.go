package document

import (
	"testing"
)

func TestHeaderFinder(t *testing.T) {
	f, err := newHeaderFinder(HeaderOptions{Mark: true, Region: true})
	if err != nil {
		t.Fatalf("newHeaderFinder() error: %v", err)
	}
	tests := []struct {
		text   string
		want   SectionHeader
		wantOK bool
	}{
		{"// MARK: Setup", SectionHeader{Line: 7, Label: "Setup"}, true},
		{"    // MARK: - Helpers  ", SectionHeader{Line: 7, Label: "Helpers", Separator: true}, true},
		{"// MARK: -", SectionHeader{Line: 7, Separator: true}, true},
		{"// MARK:", SectionHeader{}, false},
		{"// BOOKMARK: nope", SectionHeader{}, false},
		{"#region Private", SectionHeader{Line: 7, Label: "Private"}, true},
		{"  // #region Net code", SectionHeader{Line: 7, Label: "Net code"}, true},
		{"<!-- #region Nav -->", SectionHeader{Line: 7, Label: "Nav"}, true},
		{"#region", SectionHeader{}, false},
		{"#regional = 1", SectionHeader{}, false},
		{"x := region(1)", SectionHeader{}, false},
	}
	for _, tt := range tests {
		got, ok := f.find(7, tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("find(%q) = %+v, %v, want %+v, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHeaderFinderDisabled(t *testing.T) {
	f, err := newHeaderFinder(HeaderOptions{Region: true})
	if err != nil {
		t.Fatalf("newHeaderFinder() error: %v", err)
	}
	if h, ok := f.find(1, "// MARK: Setup"); ok {
		t.Errorf("find() with MARK headers off = %+v, want none", h)
	}

	f, err = newHeaderFinder(HeaderOptions{Mark: true})
	if err != nil {
		t.Fatalf("newHeaderFinder() error: %v", err)
	}
	if h, ok := f.find(1, "#region Private"); ok {
		t.Errorf("find() with region headers off = %+v, want none", h)
	}
}

func TestHeaderFinderCustomRegex(t *testing.T) {
	f, err := newHeaderFinder(HeaderOptions{Mark: true, MarkRegex: `^\s*#\s*(?<separator>=*)\s*(?<label>[A-Z].*)$`})
	if err != nil {
		t.Fatalf("newHeaderFinder() error: %v", err)
	}
	got, ok := f.find(3, "# == Section Two")
	want := SectionHeader{Line: 3, Label: "Section Two", Separator: true}
	if !ok || got != want {
		t.Errorf("find() = %+v, %v, want %+v, true", got, ok, want)
	}

	if _, err := newHeaderFinder(HeaderOptions{Mark: true, MarkRegex: "(unclosed"}); err == nil {
		t.Error("newHeaderFinder() with a broken regex should fail")
	}
	if _, err := New("x.txt", "", Options{Headers: HeaderOptions{Mark: true, MarkRegex: "[z-a]"}}); err == nil {
		t.Error("New() with a broken regex should fail")
	}
}

func TestScanHeaders(t *testing.T) {
	d := mustNew(t, "view.swift", "import UIKit\n// MARK: - Lifecycle\nfunc a() {}\n// MARK: Actions\n")
	got := d.SectionHeaders()
	want := []SectionHeader{
		{Line: 2, Label: "Lifecycle", Separator: true},
		{Line: 4, Label: "Actions"},
	}
	if len(got) != len(want) {
		t.Fatalf("SectionHeaders() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SectionHeaders()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
