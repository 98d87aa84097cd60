// Where: internal/usecase/generate/scan.go
// What: Manifest-only scan of a collection.
// Why: First phase of scan-then-generate; the manifest can be reviewed before code exists.
package generate

import (
	"fmt"
	"path/filepath"

	"github.com/poruru-code/assetenum/internal/infra/fileops"
	"github.com/poruru-code/assetenum/internal/infra/manifest"
)

// ScanRequest describes a scan whose manifest goes to Output, or is only
// returned when Output is empty.
type ScanRequest struct {
	Request
	Format manifest.Format
}

// ScanResult carries the encoded manifest.
type ScanResult struct {
	Manifest manifest.Manifest
	Payload  []byte
	Changed  bool
}

// Scan builds the manifest of the collection without rendering Go code.
func (w Workflow) Scan(req ScanRequest) (ScanResult, error) {
	req.ManifestIn = ""
	collection, rootAbs, err := w.collect(req.Request)
	if err != nil {
		return ScanResult{}, err
	}

	base := "."
	if req.Output != "" {
		base = filepath.Dir(req.Output)
	}
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return ScanResult{}, err
	}
	collection.Root = slashRel(baseAbs, rootAbs)

	format := req.Format
	if format == "" {
		format = manifest.FormatForPath(req.Output)
		if req.Output == "" {
			format = manifest.FormatYAML
		}
	}
	m := manifest.FromCollection(collection)
	payload, err := manifest.Encode(m, format)
	if err != nil {
		return ScanResult{}, err
	}
	result := ScanResult{Manifest: m, Payload: payload}
	if req.Output == "" || req.DryRun {
		result.Changed = true
		return result, nil
	}

	path, err := filepath.Abs(req.Output)
	if err != nil {
		return ScanResult{}, err
	}
	same, err := fileops.SameContent(path, payload)
	if err != nil {
		return ScanResult{}, err
	}
	result.Changed = !same
	if same {
		return result, nil
	}
	if err := fileops.WriteFileAtomic(path, payload); err != nil {
		return ScanResult{}, fmt.Errorf("write manifest: %w", err)
	}
	return result, nil
}
