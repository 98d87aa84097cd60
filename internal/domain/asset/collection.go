// Where: internal/domain/asset/collection.go
// What: Asset entry and collection value types.
// Why: Share one immutable model between scanner, manifest, and renderer.
package asset

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestPrefix marks the hash algorithm of collection and entry digests.
const DigestPrefix = "sha256:"

// Entry is one admitted file: its slash-separated path relative to the
// collection root, the derived identifier, and the file contents.
type Entry struct {
	Path       string
	Identifier string
	Data       []byte
	// Symlink marks entries read through a symbolic link. //go:embed
	// refuses those, so they can only be generated as literals.
	Symlink bool
}

// Size returns the content length in bytes.
func (e Entry) Size() int64 {
	return int64(len(e.Data))
}

// Sum returns the hex sha256 of the entry contents.
func (e Entry) Sum() string {
	sum := sha256.Sum256(e.Data)
	return hex.EncodeToString(sum[:])
}

// Collection is a named, closed set of entries in scanner order.
type Collection struct {
	Name    string
	Root    string
	Filter  FilterSpec
	Entries []Entry
}

// Len returns the number of variants.
func (c Collection) Len() int {
	return len(c.Entries)
}

// Digest hashes every entry path and content in order. Two collections with
// the same digest render identical tables.
func (c Collection) Digest() string {
	hasher := sha256.New()
	for _, entry := range c.Entries {
		_, _ = hasher.Write([]byte(entry.Path))
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.Write(entry.Data)
		_, _ = hasher.Write([]byte{0})
	}
	return DigestPrefix + hex.EncodeToString(hasher.Sum(nil))
}

// Lookup finds the entry with the given relative path.
func (c Collection) Lookup(path string) (Entry, bool) {
	for _, entry := range c.Entries {
		if entry.Path == path {
			return entry, true
		}
	}
	return Entry{}, false
}

// Paths lists entry paths in order.
func (c Collection) Paths() []string {
	paths := make([]string, 0, len(c.Entries))
	for _, entry := range c.Entries {
		paths = append(paths, entry.Path)
	}
	return paths
}
