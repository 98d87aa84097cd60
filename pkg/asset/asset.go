// Package asset defines the interface every generated collection type satisfies.
//
// A generated enum such as
//
//	//go:generate assetenum generate UiAssets assets/ui -i `\.(png|svg)$`
//
// exposes Path and Bytes on each variant, so code that only needs file
// access can accept any collection through Asset.
package asset

import "iter"

// Asset is one embedded file.
type Asset interface {
	// Path is the slash-separated path relative to the collection root.
	Path() string
	// Bytes returns a copy of the file contents.
	Bytes() []byte
}

// Find returns the first variant in all whose path equals path.
func Find[T Asset](all iter.Seq[T], path string) (T, bool) {
	for a := range all {
		if a.Path() == path {
			return a, true
		}
	}
	var zero T
	return zero, false
}

// Paths collects the paths of all variants in order.
func Paths[T Asset](all iter.Seq[T]) []string {
	var paths []string
	for a := range all {
		paths = append(paths, a.Path())
	}
	return paths
}

// TotalSize sums the content length of all variants.
func TotalSize[T Asset](all iter.Seq[T]) int {
	total := 0
	for a := range all {
		total += len(a.Bytes())
	}
	return total
}
