package porcelain

import (
	"io/fs"
	"os"
	"path/filepath"

	"vcs/repo"
)

// Add handles 'vcs add <path> [<path> ...]': recursively enumerate every
// path argument and route each resulting file through update_index(add),
// per spec.md §4.7.
func Add(args []string) {
	fset := newFlagSet("add",
		"Add file contents to the index.",
		"vcs add <path> [<path> ...]")
	fset.Parse(args[1:])

	paths := fset.Args()
	if len(paths) == 0 {
		fail("usage: vcs add <path> [<path> ...]")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}

	for _, p := range paths {
		files, err := expandPath(r.Root, p)
		if err != nil {
			fail("%v", err)
		}
		for _, rel := range files {
			if err := updateIndexPath(r, rel, true, false); err != nil {
				fail("%v", err)
			}
		}
	}

	if err := r.SaveIndex(); err != nil {
		fail("%v", err)
	}
}

// expandPath returns the repo-relative files under a positional
// argument: the path itself if it names a file, or every file beneath
// it (excluding the repository's own metadata directory) if it names
// a directory.
func expandPath(root, arg string) ([]string, error) {
	full := filepath.Join(root, arg)
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return nil, err
		}
		return []string{filepath.ToSlash(rel)}, nil
	}

	var out []string
	err = filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == repo.MetaDirName {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}
