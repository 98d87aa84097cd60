// Where: internal/infra/render/renderer_test.go
// What: Tests for the generated Go source.
// Why: The rendered file is the public API of every collection; keep it valid and stable.
package render

import (
	"bytes"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"testing"

	"github.com/poruru-code/assetenum/internal/domain/asset"
)

func uiCollection() asset.Collection {
	return asset.Collection{
		Name:   "UiAssets",
		Root:   "assets/ui",
		Filter: asset.FilterSpec{Include: `\.(png|jpg|svg)$`},
		Entries: []asset.Entry{
			{Path: "logo.png", Identifier: "LogoPng", Data: []byte{0x89, 'P', 'N', 'G', 0x00}},
			{Path: "logo.svg", Identifier: "LogoSvg", Data: []byte("<svg/>")},
		},
	}
}

func parseSource(t *testing.T, src []byte) (*token.FileSet, *ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	return fset, file
}

func typeCheck(t *testing.T, fset *token.FileSet, file *ast.File) *types.Package {
	t.Helper()
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check(file.Name.Name, fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatalf("generated source does not type-check: %v", err)
	}
	return pkg
}

// tableData extracts path -> decoded data from the generated table literal.
func tableData(t *testing.T, file *ast.File, table string) map[string][]byte {
	t.Helper()
	out := map[string][]byte{}
	ast.Inspect(file, func(node ast.Node) bool {
		spec, ok := node.(*ast.ValueSpec)
		if !ok || len(spec.Names) != 1 || spec.Names[0].Name != table {
			return true
		}
		lit := spec.Values[0].(*ast.CompositeLit)
		for _, elt := range lit.Elts {
			row := elt.(*ast.KeyValueExpr).Value.(*ast.CompositeLit)
			fields := map[string]string{}
			for _, field := range row.Elts {
				kv := field.(*ast.KeyValueExpr)
				basic, ok := kv.Value.(*ast.BasicLit)
				if !ok {
					continue
				}
				value, err := strconv.Unquote(basic.Value)
				if err != nil {
					t.Fatalf("unquote %s: %v", basic.Value, err)
				}
				fields[kv.Key.(*ast.Ident).Name] = value
			}
			out[fields["path"]] = []byte(fields["data"])
		}
		return false
	})
	return out
}

func TestRenderLiteralCollection(t *testing.T) {
	src, err := Render(uiCollection(), Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	content := string(src)
	if !strings.HasPrefix(content, "// Code generated by assetenum. DO NOT EDIT.\n") {
		t.Fatalf("expected generated header, got: %s", content)
	}
	for _, want := range []string{
		"// Source: assets/ui",
		`// Include: \.(png|jpg|svg)$`,
		"// Digest: sha256:",
		"package ui",
		"type UiAssets int",
		"UiAssetsLogoPng UiAssets = iota",
		"UiAssetsLogoSvg",
		"func (a UiAssets) Bytes() []byte",
		"func (a UiAssets) Path() string",
		"func UiAssetsAll() iter.Seq[UiAssets]",
		"func UiAssetsValues() []UiAssets",
		"func UiAssetsByPath(path string) (UiAssets, bool)",
		`case "logo.svg":`,
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output:\n%s", want, content)
		}
	}
	if strings.Contains(content, "go:embed") {
		t.Fatalf("literal mode must not use go:embed")
	}

	fset, file := parseSource(t, src)
	typeCheck(t, fset, file)
}

// assetInterface mirrors pkg/asset.Asset.
func assetInterface() *types.Interface {
	str := types.NewSignatureType(nil, nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String])), false)
	byteSlice := types.NewSignatureType(nil, nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.NewSlice(types.Typ[types.Byte]))), false)
	iface := types.NewInterfaceType([]*types.Func{
		types.NewFunc(token.NoPos, nil, "Path", str),
		types.NewFunc(token.NoPos, nil, "Bytes", byteSlice),
	}, nil)
	return iface.Complete()
}

func TestRenderedTypeImplementsAsset(t *testing.T) {
	src, err := Render(uiCollection(), Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fset, file := parseSource(t, src)
	pkg := typeCheck(t, fset, file)
	obj := pkg.Scope().Lookup("UiAssets")
	if obj == nil {
		t.Fatalf("expected UiAssets type in package")
	}
	if !types.Implements(obj.Type(), assetInterface()) {
		t.Fatalf("expected UiAssets to implement Path() string and Bytes() []byte")
	}
}

func TestRenderRoundTripsEveryByte(t *testing.T) {
	payload := make([]byte, 0, 512)
	for i := range 256 {
		payload = append(payload, byte(i))
	}
	payload = append(payload, []byte("héllo \ufeff wörld\n\t\"`")...)

	c := asset.Collection{
		Name: "Blob",
		Root: "bin",
		Entries: []asset.Entry{
			{Path: "all.bin", Identifier: "AllBin", Data: payload},
			{Path: "empty.bin", Identifier: "EmptyBin", Data: []byte{}},
		},
	}
	src, err := Render(c, Options{Package: "blob"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, file := parseSource(t, src)
	table := tableData(t, file, "blobEntries")
	if !bytes.Equal(table["all.bin"], payload) {
		t.Fatalf("payload did not round-trip")
	}
	if got, ok := table["empty.bin"]; !ok || len(got) != 0 {
		t.Fatalf("expected empty payload, got %v (present=%v)", got, ok)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(uiCollection(), Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := Render(uiCollection(), Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output")
	}
}

func TestRenderEmptyCollection(t *testing.T) {
	c := asset.Collection{Name: "Nothing", Root: "empty"}
	src, err := Render(c, Options{Package: "assets"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(string(src), "const (") {
		t.Fatalf("expected no constants for an empty collection:\n%s", src)
	}
	if !strings.Contains(string(src), "func NothingAll() iter.Seq[Nothing]") {
		t.Fatalf("expected All accessor:\n%s", src)
	}
	fset, file := parseSource(t, src)
	typeCheck(t, fset, file)
}

func TestRenderForbidEmpty(t *testing.T) {
	c := asset.Collection{Name: "Nothing", Root: "empty"}
	_, err := Render(c, Options{Package: "assets", ForbidEmpty: true})
	if !errors.Is(err, asset.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestRenderEmbedMode(t *testing.T) {
	src, err := Render(uiCollection(), Options{Package: "ui", Mode: ModeEmbed, EmbedDir: "assets/ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	content := string(src)
	for _, want := range []string{
		`_ "embed"`,
		`//go:embed "assets/ui/logo.png"`,
		"var uiAssetsData0 string",
		`//go:embed "assets/ui/logo.svg"`,
		"data: uiAssetsData1",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output:\n%s", want, content)
		}
	}
	parseSource(t, src)
}

func TestRenderEmbedRejectsOutsidePackage(t *testing.T) {
	_, err := Render(uiCollection(), Options{Package: "ui", Mode: ModeEmbed, EmbedDir: "../shared"})
	if !errors.Is(err, asset.ErrNotEmbeddable) {
		t.Fatalf("expected ErrNotEmbeddable, got %v", err)
	}
}

func TestRenderEmbedRejectsPatternCharacters(t *testing.T) {
	c := asset.Collection{
		Name:    "Odd",
		Entries: []asset.Entry{{Path: "a[1].txt", Identifier: "A1Txt", Data: []byte("x")}},
	}
	_, err := Render(c, Options{Package: "odd", Mode: ModeEmbed})
	if !errors.Is(err, asset.ErrNotEmbeddable) {
		t.Fatalf("expected ErrNotEmbeddable, got %v", err)
	}
}

func TestRenderEmbedRejectsSymlinkedEntries(t *testing.T) {
	c := uiCollection()
	c.Entries[1].Symlink = true
	_, err := Render(c, Options{Package: "ui", Mode: ModeEmbed, EmbedDir: "assets/ui"})
	if !errors.Is(err, asset.ErrNotEmbeddable) {
		t.Fatalf("expected ErrNotEmbeddable, got %v", err)
	}
	if !strings.Contains(err.Error(), "logo.svg") {
		t.Fatalf("expected path in error, got %v", err)
	}

	src, err := Render(c, Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected literal mode to accept symlinked entries, got %v", err)
	}
	fset, file := parseSource(t, src)
	typeCheck(t, fset, file)
}

func TestRenderPrefixOptions(t *testing.T) {
	bare, err := Render(uiCollection(), Options{Package: "ui", NoPrefix: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(bare), "LogoPng UiAssets = iota") || strings.Contains(string(bare), "UiAssetsLogoPng") {
		t.Fatalf("expected bare constants:\n%s", bare)
	}

	custom, err := Render(uiCollection(), Options{Package: "ui", ConstPrefix: "UI"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(custom), "UILogoSvg") {
		t.Fatalf("expected custom prefix:\n%s", custom)
	}
}

func TestRenderRejectsClashingVariant(t *testing.T) {
	c := asset.Collection{
		Name:    "Readme",
		Entries: []asset.Entry{{Path: "README", Identifier: "Readme", Data: []byte("x")}},
	}
	_, err := Render(c, Options{Package: "docs", NoPrefix: true})
	if !errors.Is(err, asset.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestRenderValidatesNames(t *testing.T) {
	if _, err := Render(uiCollection(), Options{Package: "not-a-package"}); !errors.Is(err, asset.ErrInvalidIdentifier) {
		t.Fatalf("expected invalid package error, got %v", err)
	}
	c := uiCollection()
	c.Name = "ui assets"
	if _, err := Render(c, Options{Package: "ui"}); !errors.Is(err, asset.ErrInvalidIdentifier) {
		t.Fatalf("expected invalid collection name error, got %v", err)
	}
	if _, err := Render(uiCollection(), Options{Package: "ui", Mode: "zip"}); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestRenderHeaderKeepsSingleLineComments(t *testing.T) {
	c := uiCollection()
	c.Entries[0].Path = "line\nbreak.png"
	src, err := Render(c, Options{Package: "ui"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	parseSource(t, src)
	if !strings.Contains(string(src), `case "line\nbreak.png":`) {
		t.Fatalf("expected quoted path in switch:\n%s", src)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModeLiteral, "literal": ModeLiteral, " Embed ": ModeEmbed}
	for input, want := range cases {
		got, err := ParseMode(input)
		if err != nil {
			t.Fatalf("ParseMode(%q): unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q): expected %s, got %s", input, want, got)
		}
	}
	if _, err := ParseMode("gzip"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
