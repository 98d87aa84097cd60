// Where: internal/domain/asset/errors.go
// What: Sentinel errors for asset collection generation.
// Why: Let callers branch with errors.Is while messages carry the offending path or pattern.
package asset

import "errors"

var (
	ErrDirectoryNotFound   = errors.New("directory not found")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrEmptyCollection     = errors.New("empty collection")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrNotEmbeddable       = errors.New("file cannot be embedded")
	ErrInvalidManifest     = errors.New("invalid manifest")
	ErrStaleManifest       = errors.New("stale manifest")
	ErrManifestIdentifier  = errors.New("manifest identifier mismatch")
	ErrOutOfDate           = errors.New("generated file is out of date")
	ErrInvalidConfig       = errors.New("invalid config")
)
