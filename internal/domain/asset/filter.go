// Where: internal/domain/asset/filter.go
// What: Include/exclude filter over relative asset paths.
// Why: Keep admission rules in one place for the scanner and the manifest loader.
package asset

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterSpec holds the optional include and exclude patterns of a collection.
// An empty pattern means the filter is absent.
type FilterSpec struct {
	Include string
	Exclude string
}

// Filter is a compiled FilterSpec.
type Filter struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// Compile validates both patterns and returns the compiled filter.
func (s FilterSpec) Compile() (Filter, error) {
	var f Filter
	var err error
	if f.include, err = compilePattern("include", s.Include); err != nil {
		return Filter{}, err
	}
	if f.exclude, err = compilePattern("exclude", s.Exclude); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// IsZero reports whether neither pattern is set.
func (s FilterSpec) IsZero() bool {
	return strings.TrimSpace(s.Include) == "" && strings.TrimSpace(s.Exclude) == ""
}

func (s FilterSpec) String() string {
	parts := make([]string, 0, 2)
	if s.Include != "" {
		parts = append(parts, "include: "+s.Include)
	}
	if s.Exclude != "" {
		parts = append(parts, "exclude: "+s.Exclude)
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, ", ")
}

// Admit reports whether rel passes the filter: it must match include (when set)
// and must not match exclude (when set).
func (f Filter) Admit(rel string) bool {
	if f.include != nil && !f.include.MatchString(rel) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(rel) {
		return false
	}
	return true
}

func compilePattern(kind, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern %q: %v", ErrInvalidFilter, kind, pattern, err)
	}
	return re, nil
}
