// Where: internal/infra/manifest/manifest.go
// What: Serialized path/identifier manifest of a scanned collection.
// Why: Split scanning from code generation so the mapping can be reviewed and pinned.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/poruru-code/assetenum/internal/domain/asset"
	"github.com/poruru-code/assetenum/internal/infra/fileops"
)

// SchemaVersion is written into every manifest.
const SchemaVersion = "1.0"

// Format is the on-disk encoding of a manifest.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Manifest describes a collection without its contents.
type Manifest struct {
	SchemaVersion string  `json:"schema_version"`
	Collection    string  `json:"collection"`
	Root          string  `json:"root"`
	Filters       Filters `json:"filters,omitempty"`
	Digest        string  `json:"digest"`
	Entries       []Entry `json:"entries"`
}

// Filters mirrors asset.FilterSpec.
type Filters struct {
	Include string `json:"include,omitempty"`
	Exclude string `json:"exclude,omitempty"`
}

// Entry describes one admitted file.
type Entry struct {
	Path       string `json:"path"`
	Identifier string `json:"identifier"`
	Size       int64  `json:"size"`
	Sha256     string `json:"sha256"`
}

// FromCollection builds the manifest of c. Root is stored as given; callers
// decide whether it is relative to the manifest file.
func FromCollection(c asset.Collection) Manifest {
	m := Manifest{
		SchemaVersion: SchemaVersion,
		Collection:    c.Name,
		Root:          filepath.ToSlash(c.Root),
		Filters:       Filters{Include: c.Filter.Include, Exclude: c.Filter.Exclude},
		Digest:        c.Digest(),
		Entries:       make([]Entry, 0, len(c.Entries)),
	}
	for _, entry := range c.Entries {
		m.Entries = append(m.Entries, Entry{
			Path:       entry.Path,
			Identifier: entry.Identifier,
			Size:       entry.Size(),
			Sha256:     entry.Sum(),
		})
	}
	return m
}

// FilterSpec returns the manifest filters as an asset.FilterSpec.
func (m Manifest) FilterSpec() asset.FilterSpec {
	return asset.FilterSpec{Include: m.Filters.Include, Exclude: m.Filters.Exclude}
}

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes m.
func Encode(m Manifest, format Format) ([]byte, error) {
	jsonData, err := marshalJSON(m)
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		payload, err := yaml.JSONToYAML(jsonData)
		if err != nil {
			return nil, fmt.Errorf("encode manifest yaml: %w", err)
		}
		return payload, nil
	}
	return jsonData, nil
}

// Decode parses YAML or JSON, validates it against the manifest schema, and
// checks the schema version.
func Decode(data []byte) (Manifest, error) {
	jsonData, err := validateManifest(data)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(jsonData, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: decode: %v", asset.ErrInvalidManifest, err)
	}
	if err := checkSchemaVersion(m.SchemaVersion); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Write encodes m in the format implied by path.
func Write(path string, m Manifest) error {
	payload, err := Encode(m, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := fileops.WriteFileAtomic(path, payload); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Read loads and validates a manifest file.
func Read(path string) (Manifest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Decode(payload)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
