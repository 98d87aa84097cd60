// Where: internal/infra/render/renderer.go
// What: Render an asset collection into a Go source file.
// Why: Emit the closed enum type, its accessors, and the embedded table.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/tools/imports"

	"github.com/poruru-code/assetenum/internal/domain/asset"
	"github.com/poruru-code/assetenum/internal/meta"
)

const collectionTemplate = "collection.go.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// Options controls how a collection is rendered.
type Options struct {
	// Package is the Go package clause of the generated file.
	Package string
	Mode    Mode
	// ConstPrefix is prepended to every variant constant; empty means the
	// collection name. Ignored when NoPrefix is set.
	ConstPrefix string
	NoPrefix    bool
	ForbidEmpty bool
	// EmbedDir is the slash path from the generated file's directory to the
	// collection root. Only used in ModeEmbed.
	EmbedDir string
	// Source is the root as shown in the generated header; defaults to Collection.Root.
	Source string
}

type collectionTemplateData struct {
	Tool    string
	Source  string
	Filter  asset.FilterSpec
	Digest  string
	Package string
	Name    string
	Table   string
	Embed   bool
	Entries []entryTemplateData
}

type entryTemplateData struct {
	Const       string
	Path        string
	QuotedIdent string
	QuotedPath  string
	Data        string
	DataVar     string
	EmbedPath   string
}

// Render produces gofmt-formatted Go source for c.
func Render(c asset.Collection, opts Options) ([]byte, error) {
	if err := asset.ValidateName("collection", c.Name); err != nil {
		return nil, err
	}
	if err := asset.ValidateName("package", opts.Package); err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = ModeLiteral
	}
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}
	if opts.ForbidEmpty && len(c.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s has no files in %s (%s)", asset.ErrEmptyCollection, c.Name, c.Root, c.Filter)
	}

	data, err := buildTemplateData(c, opts)
	if err != nil {
		return nil, err
	}

	source, err := renderTemplate(collectionTemplate, data)
	if err != nil {
		return nil, err
	}
	formatted, err := imports.Process("", source, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated source for %s: %w", c.Name, err)
	}
	return formatted, nil
}

func buildTemplateData(c asset.Collection, opts Options) (collectionTemplateData, error) {
	source := opts.Source
	if source == "" {
		source = c.Root
	}
	prefix := c.Name
	if opts.ConstPrefix != "" {
		prefix = opts.ConstPrefix
	}
	if opts.NoPrefix {
		prefix = ""
	}

	table := lowerFirst(c.Name) + "Entries"
	reserved := map[string]struct{}{
		c.Name:            {},
		c.Name + "All":    {},
		c.Name + "Values": {},
		c.Name + "ByPath": {},
		table:             {},
	}

	data := collectionTemplateData{
		Tool:    meta.AppName,
		Source:  commentSafe(source),
		Filter:  asset.FilterSpec{Include: commentSafe(c.Filter.Include), Exclude: commentSafe(c.Filter.Exclude)},
		Digest:  c.Digest(),
		Package: opts.Package,
		Name:    c.Name,
		Table:   table,
		Embed:   opts.Mode == ModeEmbed,
		Entries: make([]entryTemplateData, 0, len(c.Entries)),
	}

	for i, entry := range c.Entries {
		constName := prefix + entry.Identifier
		if err := asset.ValidateName("variant", constName); err != nil {
			return collectionTemplateData{}, err
		}
		if _, clash := reserved[constName]; clash {
			return collectionTemplateData{}, fmt.Errorf(
				"%w: variant %s for %q clashes with a generated declaration",
				asset.ErrInvalidIdentifier,
				constName,
				entry.Path,
			)
		}
		item := entryTemplateData{
			Const:       constName,
			Path:        commentSafe(entry.Path),
			QuotedIdent: strconv.Quote(entry.Identifier),
			QuotedPath:  strconv.Quote(entry.Path),
		}
		if data.Embed {
			if entry.Symlink {
				return collectionTemplateData{}, fmt.Errorf("%w: %s is a symlink (use literal mode)", asset.ErrNotEmbeddable, entry.Path)
			}
			embedPath, err := embedPattern(opts.EmbedDir, entry.Path)
			if err != nil {
				return collectionTemplateData{}, err
			}
			item.DataVar = fmt.Sprintf("%sData%d", lowerFirst(c.Name), i)
			item.EmbedPath = strconv.Quote(embedPath)
			item.Data = item.DataVar
		} else {
			item.Data = strconv.Quote(string(entry.Data))
		}
		data.Entries = append(data.Entries, item)
	}
	return data, nil
}

// embedPattern joins the embed dir and entry path and rejects names that
// //go:embed would treat as a pattern or that escape the package directory.
func embedPattern(embedDir, rel string) (string, error) {
	joined := path.Join(embedDir, rel)
	if joined == ".." || strings.HasPrefix(joined, "../") || path.IsAbs(joined) {
		return "", fmt.Errorf("%w: %s lies outside the generated file's package directory", asset.ErrNotEmbeddable, rel)
	}
	if strings.ContainsAny(joined, "*?[\\") {
		return "", fmt.Errorf("%w: %s contains pattern characters", asset.ErrNotEmbeddable, rel)
	}
	return joined, nil
}

func renderTemplate(name string, data any) ([]byte, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		return value.(*template.Template), nil
	}
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// commentSafe keeps a value on a single comment line.
func commentSafe(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, value)
}
