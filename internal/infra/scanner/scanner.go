// Where: internal/infra/scanner/scanner.go
// What: Directory scanner producing ordered asset entries.
// Why: Turn a directory tree plus filters into the deterministic input of the renderer.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/poruru-code/assetenum/internal/domain/asset"
)

const defaultConcurrency = 8

// Skip reasons passed to Options.OnSkip.
const (
	SkipFiltered   = "filtered"
	SkipSymlinkDir = "symlinked directory"
	SkipIrregular  = "not a regular file"
	SkipBrokenLink = "broken symlink"
	SkipIgnored    = "generated file"
)

// Options tunes a Scanner.
type Options struct {
	// Concurrency bounds parallel file reads. Zero means the default.
	Concurrency int
	// OnSkip, when set, is told about every file left out of the collection.
	OnSkip func(rel, reason string)
	// Ignore lists slash-separated paths, relative to the scanned root, that
	// are never collected. Generated outputs living under the root go here.
	Ignore []string
}

// Scanner walks a billy filesystem.
type Scanner struct {
	fs     billy.Filesystem
	opts   Options
	ignore map[string]struct{}
}

// New returns a Scanner reading from fs.
func New(fs billy.Filesystem, opts Options) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	ignore := make(map[string]struct{}, len(opts.Ignore))
	for _, rel := range opts.Ignore {
		ignore[path.Clean(rel)] = struct{}{}
	}
	return &Scanner{fs: fs, opts: opts, ignore: ignore}
}

// ScanDir scans dir on the host filesystem.
func ScanDir(dir string, spec asset.FilterSpec, opts Options) ([]asset.Entry, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", asset.ErrDirectoryNotFound, dir)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", asset.ErrDirectoryNotFound, dir)
	}
	return New(osfs.New(dir), opts).Scan(".", spec)
}

// Scan walks root and returns the admitted files sorted by relative path.
// Filters are compiled before the walk, identifiers are checked for
// collisions before any content is read.
func (s *Scanner) Scan(root string, spec asset.FilterSpec) ([]asset.Entry, error) {
	filter, err := spec.Compile()
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", asset.ErrDirectoryNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", asset.ErrDirectoryNotFound, root)
	}

	files := make([]string, 0)
	links := map[string]bool{}
	if err := s.walk(root, "", filter, &files, links); err != nil {
		return nil, err
	}
	sort.Strings(files)

	entries := make([]asset.Entry, len(files))
	for i, rel := range files {
		id, err := asset.Identifier(rel)
		if err != nil {
			return nil, err
		}
		entries[i] = asset.Entry{Path: rel, Identifier: id, Symlink: links[rel]}
	}
	if err := asset.CheckUnique(entries); err != nil {
		return nil, err
	}

	if err := s.readAll(root, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Scanner) walk(root, rel string, filter asset.Filter, files *[]string, links map[string]bool) error {
	dir := s.fs.Join(root, rel)
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	for _, info := range infos {
		childRel := path.Join(rel, info.Name())
		if _, ok := s.ignore[childRel]; ok {
			s.skip(childRel, SkipIgnored)
			continue
		}
		symlink := info.Mode()&os.ModeSymlink != 0
		if symlink {
			target, err := s.fs.Stat(s.fs.Join(root, childRel))
			switch {
			case errors.Is(err, os.ErrNotExist):
				if !filter.Admit(childRel) {
					s.skip(childRel, SkipFiltered)
				} else {
					s.skip(childRel, SkipBrokenLink)
				}
				continue
			case err != nil:
				return fmt.Errorf("resolve symlink %s: %w", childRel, err)
			case target.IsDir():
				s.skip(childRel, SkipSymlinkDir)
				continue
			}
			info = target
		}

		if info.IsDir() {
			if err := s.walk(root, childRel, filter, files, links); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			s.skip(childRel, SkipIrregular)
			continue
		}
		if !filter.Admit(childRel) {
			s.skip(childRel, SkipFiltered)
			continue
		}
		*files = append(*files, childRel)
		if symlink {
			links[childRel] = true
		}
	}
	return nil
}

// readAll fills entry contents in parallel; each goroutine owns one index.
func (s *Scanner) readAll(root string, entries []asset.Entry) error {
	var group errgroup.Group
	group.SetLimit(s.opts.Concurrency)
	for i := range entries {
		group.Go(func() error {
			name := s.fs.Join(root, entries[i].Path)
			data, err := util.ReadFile(s.fs, name)
			if err != nil {
				return fmt.Errorf("read %s: %w", entries[i].Path, err)
			}
			entries[i].Data = data
			return nil
		})
	}
	return group.Wait()
}

func (s *Scanner) skip(rel, reason string) {
	if s.opts.OnSkip != nil {
		s.opts.OnSkip(rel, reason)
	}
}
