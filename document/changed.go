package document

import (
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/teranos/xmldoc/errors"
)

// ChangedFiles lists files under the git work tree containing root that are
// modified, added or untracked, as absolute paths. Deleted files are left out.
func ChangedFiles(root string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.WithHint(
				errors.Wrapf(err, "%s is not inside a git repository", root),
				"drop --changed or set files.changed_only = false")
		}
		return nil, errors.Wrapf(err, "failed to open git repository at %s", root)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get worktree status")
	}

	top := wt.Filesystem.Root()
	var files []string
	for path, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		files = append(files, filepath.Join(top, filepath.FromSlash(path)))
	}
	sort.Strings(files)
	return files, nil
}

// FilterChanged keeps the files present in changed. Paths are compared in
// absolute form.
func FilterChanged(files, changed []string) []string {
	set := make(map[string]bool, len(changed))
	for _, c := range changed {
		set[absPath(c)] = true
	}
	var out []string
	for _, f := range files {
		if set[absPath(f)] {
			out = append(out, f)
		}
	}
	return out
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
