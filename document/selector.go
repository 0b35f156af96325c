package document

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/errors"
)

// Selector picks the files to document by glob. Patterns are matched against
// slash-separated paths relative to the walked root.
type Selector struct {
	include []string
	exclude []string
}

// NewSelector validates the patterns in files.
func NewSelector(files config.FilesConfig) (*Selector, error) {
	for _, p := range append(append([]string(nil), files.Include...), files.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf("invalid glob pattern %q", p)
		}
	}
	return &Selector{include: files.Include, exclude: files.Exclude}, nil
}

// Match reports whether rel is included and not excluded.
func (s *Selector) Match(rel string) bool {
	if s.Excluded(rel) {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range s.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Excluded reports whether rel matches an exclude pattern.
func (s *Selector) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range s.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Walk returns the selected files under roots, sorted and without duplicates.
// A root that is a file is taken as long as it is not excluded; directories
// are walked and filtered by the include patterns. Hidden directories such as
// .git are not entered.
func (s *Selector) Walk(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapNotFound(err, root)
		}
		if !info.IsDir() {
			if !s.Excluded(filepath.Base(root)) && !s.Excluded(root) {
				add(filepath.Clean(root))
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if s.Match(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
