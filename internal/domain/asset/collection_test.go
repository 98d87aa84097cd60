// Where: internal/domain/asset/collection_test.go
// What: Tests for filters and collection helpers.
// Why: Admission semantics and digests feed directly into generated output.
package asset

import (
	"errors"
	"strings"
	"testing"
)

func TestFilterAdmitTruthTable(t *testing.T) {
	cases := []struct {
		name string
		spec FilterSpec
		path string
		want bool
	}{
		{name: "no filters", spec: FilterSpec{}, path: "notes.txt", want: true},
		{name: "include match", spec: FilterSpec{Include: `\.png$`}, path: "logo.png", want: true},
		{name: "include miss", spec: FilterSpec{Include: `\.png$`}, path: "notes.txt", want: false},
		{name: "exclude match", spec: FilterSpec{Exclude: `temp`}, path: "temp/a.json", want: false},
		{name: "exclude miss", spec: FilterSpec{Exclude: `temp`}, path: "settings.json", want: true},
		{name: "both admit", spec: FilterSpec{Include: `\.json$`, Exclude: `temp`}, path: "settings.json", want: true},
		{name: "both excluded", spec: FilterSpec{Include: `\.json$`, Exclude: `temp`}, path: "temp.json", want: false},
		{name: "both not included", spec: FilterSpec{Include: `\.json$`, Exclude: `temp`}, path: "readme.md", want: false},
		{name: "slash paths", spec: FilterSpec{Include: `^icons/`}, path: "icons/home.svg", want: true},
	}
	for _, tc := range cases {
		filter, err := tc.spec.Compile()
		if err != nil {
			t.Fatalf("%s: unexpected compile error: %v", tc.name, err)
		}
		if got := filter.Admit(tc.path); got != tc.want {
			t.Fatalf("%s: Admit(%q) expected %v, got %v", tc.name, tc.path, tc.want, got)
		}
	}
}

func TestFilterCompileInvalid(t *testing.T) {
	_, err := FilterSpec{Include: `(`}.Compile()
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), `"("`) {
		t.Fatalf("expected pattern context in error, got %v", err)
	}

	_, err = FilterSpec{Exclude: `[a-`}.Compile()
	if !errors.Is(err, ErrInvalidFilter) || !strings.Contains(err.Error(), "exclude") {
		t.Fatalf("expected exclude ErrInvalidFilter, got %v", err)
	}
}

func TestFilterSpecString(t *testing.T) {
	if got := (FilterSpec{}).String(); got != "no filters" {
		t.Fatalf("unexpected string: %s", got)
	}
	got := FilterSpec{Include: `\.png$`, Exclude: "tmp"}.String()
	if got != `include: \.png$, exclude: tmp` {
		t.Fatalf("unexpected string: %s", got)
	}
}

func TestCollectionDigestIsStableAndSensitive(t *testing.T) {
	base := Collection{
		Name: "UiAssets",
		Entries: []Entry{
			{Path: "logo.png", Identifier: "LogoPng", Data: []byte("png")},
			{Path: "logo.svg", Identifier: "LogoSvg", Data: []byte("<svg/>")},
		},
	}
	first := base.Digest()
	if !strings.HasPrefix(first, DigestPrefix) {
		t.Fatalf("expected digest prefix, got %s", first)
	}
	if base.Digest() != first {
		t.Fatalf("expected stable digest")
	}

	changed := base
	changed.Entries = []Entry{
		{Path: "logo.png", Identifier: "LogoPng", Data: []byte("png!")},
		base.Entries[1],
	}
	if changed.Digest() == first {
		t.Fatalf("expected digest to change with content")
	}

	renamed := base
	renamed.Entries = []Entry{
		{Path: "logo2.png", Identifier: "Logo2Png", Data: []byte("png")},
		base.Entries[1],
	}
	if renamed.Digest() == first {
		t.Fatalf("expected digest to change with path")
	}
}

func TestCollectionLookup(t *testing.T) {
	c := Collection{Entries: []Entry{
		{Path: "a.txt", Identifier: "ATxt", Data: []byte("a")},
		{Path: "b/c.txt", Identifier: "BCTxt", Data: []byte("c")},
	}}
	entry, ok := c.Lookup("b/c.txt")
	if !ok || entry.Identifier != "BCTxt" {
		t.Fatalf("expected lookup hit, got %+v %v", entry, ok)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
	if got := strings.Join(c.Paths(), ","); got != "a.txt,b/c.txt" {
		t.Fatalf("unexpected paths: %s", got)
	}
}

func TestEntrySum(t *testing.T) {
	entry := Entry{Data: []byte("")}
	const emptySum = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if entry.Sum() != emptySum {
		t.Fatalf("unexpected sum: %s", entry.Sum())
	}
	if entry.Size() != 0 {
		t.Fatalf("unexpected size: %d", entry.Size())
	}
}
