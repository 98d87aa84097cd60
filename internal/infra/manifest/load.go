// Where: internal/infra/manifest/load.go
// What: Rebuild a collection from a manifest and the files it lists.
// Why: Generate from a pinned manifest while refusing drifted content or identifiers.
package manifest

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/poruru-code/assetenum/internal/domain/asset"
)

// Load reads every manifest entry from root on fs and returns the collection.
// Content that no longer matches the recorded size or sha256 fails with
// ErrStaleManifest; an identifier that disagrees with the derivation fails
// with ErrManifestIdentifier.
func Load(m Manifest, fs billy.Filesystem, root string) (asset.Collection, error) {
	if err := asset.ValidateName("collection", m.Collection); err != nil {
		return asset.Collection{}, err
	}
	spec := m.FilterSpec()
	filter, err := spec.Compile()
	if err != nil {
		return asset.Collection{}, err
	}

	entries := make([]asset.Entry, 0, len(m.Entries))
	for i, item := range m.Entries {
		if i > 0 && item.Path <= m.Entries[i-1].Path {
			return asset.Collection{}, fmt.Errorf("%w: entries must be sorted and unique (%q after %q)",
				asset.ErrInvalidManifest, item.Path, m.Entries[i-1].Path)
		}
		if !filter.Admit(item.Path) {
			return asset.Collection{}, fmt.Errorf("%w: %s is excluded by %s",
				asset.ErrInvalidManifest, item.Path, spec)
		}
		derived, err := asset.Identifier(item.Path)
		if err != nil {
			return asset.Collection{}, err
		}
		if derived != item.Identifier {
			return asset.Collection{}, fmt.Errorf("%w: %s is recorded as %s but derives %s",
				asset.ErrManifestIdentifier, item.Path, item.Identifier, derived)
		}

		name := fs.Join(root, item.Path)
		data, err := util.ReadFile(fs, name)
		if err != nil {
			return asset.Collection{}, fmt.Errorf("%w: read %s: %v", asset.ErrStaleManifest, item.Path, err)
		}
		entry := asset.Entry{Path: item.Path, Identifier: derived, Data: data}
		if info, err := fs.Lstat(name); err == nil && info.Mode()&os.ModeSymlink != 0 {
			entry.Symlink = true
		}
		if entry.Size() != item.Size || entry.Sum() != item.Sha256 {
			return asset.Collection{}, fmt.Errorf("%w: %s changed since the manifest was written",
				asset.ErrStaleManifest, item.Path)
		}
		entries = append(entries, entry)
	}
	if err := asset.CheckUnique(entries); err != nil {
		return asset.Collection{}, err
	}

	c := asset.Collection{Name: m.Collection, Root: m.Root, Filter: spec, Entries: entries}
	if got := c.Digest(); got != m.Digest {
		return asset.Collection{}, fmt.Errorf("%w: digest %s does not match %s",
			asset.ErrStaleManifest, got, m.Digest)
	}
	return c, nil
}
