// Where: internal/usecase/generate/generate.go
// What: Generate workflow orchestration.
// Why: Tie scanning, manifests, rendering, and writing together without CLI concerns.
package generate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/poruru-code/assetenum/internal/domain/asset"
	"github.com/poruru-code/assetenum/internal/infra/fileops"
	"github.com/poruru-code/assetenum/internal/infra/manifest"
	"github.com/poruru-code/assetenum/internal/infra/render"
	"github.com/poruru-code/assetenum/internal/infra/scanner"
	"github.com/poruru-code/assetenum/internal/infra/ui"
)

var (
	errOutputRequired    = errors.New("output path is required")
	errSourceRequired    = errors.New("asset directory or manifest is required")
	errCollectionMissing = errors.New("collection name is required")
)

// Request captures the inputs of one collection run.
type Request struct {
	Collection  string
	Dir         string
	Filter      asset.FilterSpec
	Output      string
	Package     string
	Mode        string
	ConstPrefix string
	NoPrefix    bool
	ForbidEmpty bool
	// ManifestIn generates from a manifest instead of scanning Dir.
	ManifestIn string
	// ManifestOut also writes the manifest of the generated collection.
	ManifestOut string
	DryRun      bool
	// Check fails with ErrOutOfDate instead of writing.
	Check   bool
	Verbose bool
}

// Result summarizes a run.
type Result struct {
	Output  string
	Entries int
	Digest  string
	// Changed reports whether Output differs (or would differ) from disk.
	Changed bool
	// Source holds the rendered file; always set so dry runs can print it.
	Source []byte
}

// ScanFunc reads a collection directory.
type ScanFunc func(dir string, spec asset.FilterSpec, opts scanner.Options) ([]asset.Entry, error)

// Workflow runs generate requests.
type Workflow struct {
	UI      ui.UserInterface
	ReadDir ScanFunc
}

// NewWorkflow returns a Workflow scanning the host filesystem.
func NewWorkflow(out ui.UserInterface) Workflow {
	if out == nil {
		out = ui.Discard()
	}
	return Workflow{UI: out, ReadDir: scanner.ScanDir}
}

// Run builds the collection, renders it, and writes the output. Everything is
// computed in memory first, so a failure leaves existing files untouched.
func (w Workflow) Run(req Request) (Result, error) {
	if strings.TrimSpace(req.Output) == "" {
		return Result{}, errOutputRequired
	}
	mode, err := render.ParseMode(req.Mode)
	if err != nil {
		return Result{}, err
	}
	output, err := filepath.Abs(req.Output)
	if err != nil {
		return Result{}, err
	}
	outputDir := filepath.Dir(output)

	collection, rootAbs, err := w.collect(req)
	if err != nil {
		return Result{}, err
	}

	source := slashRel(outputDir, rootAbs)
	collection.Root = source
	src, err := render.Render(collection, render.Options{
		Package:     req.Package,
		Mode:        mode,
		ConstPrefix: req.ConstPrefix,
		NoPrefix:    req.NoPrefix,
		ForbidEmpty: req.ForbidEmpty,
		EmbedDir:    source,
		Source:      source,
	})
	if err != nil {
		return Result{}, err
	}

	var manifestPayload []byte
	var manifestPath string
	if req.ManifestOut != "" {
		manifestPath, err = filepath.Abs(req.ManifestOut)
		if err != nil {
			return Result{}, err
		}
		manifestPayload, err = encodeManifest(collection, manifestPath, rootAbs)
		if err != nil {
			return Result{}, err
		}
	}

	same, err := fileops.SameContent(output, src)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", req.Output, err)
	}
	result := Result{
		Output:  req.Output,
		Entries: collection.Len(),
		Digest:  collection.Digest(),
		Changed: !same,
		Source:  src,
	}

	switch {
	case req.Check:
		if !same {
			return result, fmt.Errorf("%w: %s (run %s generate)", asset.ErrOutOfDate, req.Output, toolName)
		}
		if manifestPayload != nil {
			sameManifest, err := fileops.SameContent(manifestPath, manifestPayload)
			if err != nil {
				return result, fmt.Errorf("read %s: %w", req.ManifestOut, err)
			}
			if !sameManifest {
				return result, fmt.Errorf("%w: %s (run %s generate)", asset.ErrOutOfDate, req.ManifestOut, toolName)
			}
		}
		return result, nil
	case req.DryRun:
		return result, nil
	}

	if !same {
		if err := fileops.WriteFileAtomic(output, src); err != nil {
			return result, fmt.Errorf("write %s: %w", req.Output, err)
		}
	}
	if manifestPayload != nil {
		if err := writeIfChanged(manifestPath, manifestPayload); err != nil {
			return result, fmt.Errorf("write manifest: %w", err)
		}
		w.UI.Detail(fmt.Sprintf("manifest %s", req.ManifestOut))
	}
	return result, nil
}

// collect returns the collection and the absolute path of its root.
func (w Workflow) collect(req Request) (asset.Collection, string, error) {
	if req.ManifestIn != "" {
		return w.collectFromManifest(req)
	}
	if strings.TrimSpace(req.Dir) == "" {
		return asset.Collection{}, "", errSourceRequired
	}
	if err := asset.ValidateName("collection", req.Collection); err != nil {
		if req.Collection == "" {
			return asset.Collection{}, "", errCollectionMissing
		}
		return asset.Collection{}, "", err
	}
	rootAbs, err := filepath.Abs(req.Dir)
	if err != nil {
		return asset.Collection{}, "", err
	}

	scan := w.ReadDir
	if scan == nil {
		scan = scanner.ScanDir
	}
	entries, err := scan(rootAbs, req.Filter, scanner.Options{
		OnSkip: func(rel, reason string) {
			w.UI.Detail(fmt.Sprintf("skip %s (%s)", rel, reason))
		},
		Ignore: generatedUnder(rootAbs, req.Output, req.ManifestOut),
	})
	if err != nil {
		return asset.Collection{}, "", err
	}
	w.UI.Detail(fmt.Sprintf("%s: %d files from %s", req.Collection, len(entries), req.Dir))
	return asset.Collection{Name: req.Collection, Root: req.Dir, Filter: req.Filter, Entries: entries}, rootAbs, nil
}

func (w Workflow) collectFromManifest(req Request) (asset.Collection, string, error) {
	m, err := manifest.Read(req.ManifestIn)
	if err != nil {
		return asset.Collection{}, "", err
	}
	if req.Collection != "" && req.Collection != m.Collection {
		return asset.Collection{}, "", fmt.Errorf("%w: %s describes %s, not %s",
			asset.ErrInvalidManifest, req.ManifestIn, m.Collection, req.Collection)
	}
	if !req.Filter.IsZero() && req.Filter != m.FilterSpec() {
		w.UI.Warn(fmt.Sprintf("ignoring filters (%s); %s pins %s", req.Filter, req.ManifestIn, m.FilterSpec()))
	}

	root := req.Dir
	if root == "" {
		root = filepath.FromSlash(m.Root)
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(req.ManifestIn), root)
		}
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return asset.Collection{}, "", err
	}
	if !fileops.DirExists(rootAbs) {
		return asset.Collection{}, "", fmt.Errorf("%w: %s", asset.ErrDirectoryNotFound, root)
	}

	collection, err := manifest.Load(m, osfs.New(rootAbs), ".")
	if err != nil {
		return asset.Collection{}, "", err
	}
	w.UI.Detail(fmt.Sprintf("%s: %d files pinned by %s", m.Collection, collection.Len(), req.ManifestIn))
	return collection, rootAbs, nil
}

// generatedUnder returns the files this run writes that live inside root,
// relative to root, so a rerun never collects its own output.
func generatedUnder(rootAbs string, paths ...string) []string {
	var out []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// encodeManifest stores the root relative to the manifest file.
func encodeManifest(c asset.Collection, manifestPath, rootAbs string) ([]byte, error) {
	c.Root = slashRel(filepath.Dir(manifestPath), rootAbs)
	return manifest.Encode(manifest.FromCollection(c), manifest.FormatForPath(manifestPath))
}

func writeIfChanged(path string, payload []byte) error {
	same, err := fileops.SameContent(path, payload)
	if err != nil || same {
		return err
	}
	return fileops.WriteFileAtomic(path, payload)
}

// slashRel returns target relative to base with forward slashes, or the
// absolute target when no relative path exists (different volumes).
func slashRel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
