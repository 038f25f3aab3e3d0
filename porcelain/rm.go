package porcelain

import (
	"os"
	"path/filepath"

	"vcs/repo"
	"vcs/vcsdiff"
)

// Rm handles 'vcs rm [-r] [-f] <path> [<path> ...]'. It refuses to
// remove a directory without -r, refuses -f outright (§7's "not yet
// implemented" class), and refuses any target with uncommitted changes.
func Rm(args []string) {
	fs := newFlagSet("rm",
		"Remove files from the working tree and from the index.",
		"vcs rm [-r] [-f] <path> [<path> ...]")
	recursive := fs.Bool("r", false, "Allow recursive removal when a leading directory name is given.")
	force := fs.Bool("f", false, "Override the up-to-date check.")
	fs.Parse(args[1:])

	paths := fs.Args()
	if len(paths) == 0 {
		fail("usage: vcs rm [-r] [-f] <path> [<path> ...]")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}
	if *force {
		fail("%v: rm -f", ErrUnsupported)
	}

	headToWorkingCopy, err := r.HeadToWorkingCopy()
	if err != nil {
		fail("%v", err)
	}

	for _, p := range paths {
		clean := filepath.ToSlash(filepath.Clean(p))
		full := filepath.Join(r.Root, clean)

		isDir := false
		if info, err := os.Stat(full); err == nil {
			isDir = info.IsDir()
		}
		if isDir && !*recursive {
			fail("not removing %s recursively without -r", clean)
		}

		targets := r.Index.MatchingFiles(clean)
		if len(targets) == 0 {
			fail("pathspec %s did not match any files", clean)
		}

		for _, target := range targets {
			if e, ok := headToWorkingCopy[target]; ok && e.Status != vcsdiff.Same {
				fail("%s has local modifications", target)
			}
		}

		for _, target := range targets {
			if err := updateIndexPath(r, target, false, true); err != nil {
				fail("%v", err)
			}
			if err := os.Remove(filepath.Join(r.Root, target)); err != nil && !os.IsNotExist(err) {
				fail("%v", err)
			}
		}
	}

	if err := r.SaveIndex(); err != nil {
		fail("%v", err)
	}
}
