package porcelain

import (
	"fmt"
	"os"
	"path/filepath"

	"vcs/index"
	"vcs/repo"
)

// UpdateIndex handles 'vcs update-index [--add] [--remove] <path>', the
// primitive add and rm build on.
func UpdateIndex(args []string) {
	fs := newFlagSet("update-index",
		"Register the current state of a path into the index.",
		"vcs update-index [--add] [--remove] <path>")
	add := fs.Bool("add", false, "If a specified path does not yet exist in the index, add it.")
	remove := fs.Bool("remove", false, "If a path no longer exists, remove it from the index.")
	fs.Parse(args[1:])

	if fs.NArg() != 1 {
		fail("usage: vcs update-index [--add] [--remove] <path>")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}

	path := filepath.ToSlash(filepath.Clean(fs.Arg(0)))
	if err := updateIndexPath(r, path, *add, *remove); err != nil {
		fail("%v", err)
	}
	if err := r.SaveIndex(); err != nil {
		fail("%v", err)
	}
}

// updateIndexPath implements the on-disk x in-index x add/remove
// decision table:
//
//	on-disk | in-index | add | remove | action
//	dir     | –        | –   | –      | error: is a directory
//	no      | yes      | –   | yes    | unsupported if conflicted, else remove
//	no      | no       | –   | yes    | no-op
//	yes     | no       | no  | –      | error: use --add
//	yes     | *        | yes or in-index | – | stage file's current content
//	no      | –        | –   | no     | error: does not exist and --remove not passed
func updateIndexPath(r *repo.Repository, path string, add, remove bool) error {
	full := filepath.Join(r.Root, path)
	info, statErr := os.Lstat(full)
	onDisk := statErr == nil
	if onDisk && info.IsDir() {
		return fmt.Errorf("%s: is a directory - add files inside instead", path)
	}

	inIndexClean := r.Index.HasFile(path, index.StageNone)
	inConflict := r.Index.HasFile(path, index.StageReceiver) || r.Index.HasFile(path, index.StageGiver)
	isInIndex := inIndexClean || inConflict

	if onDisk {
		if add || isInIndex {
			content, err := os.ReadFile(full)
			if err != nil {
				return err
			}
			_, err = r.Index.WriteNonConflict(path, content)
			return err
		}
		return fmt.Errorf("%s: cannot add to the index - use --add option", path)
	}

	if isInIndex && remove {
		if inConflict {
			return fmt.Errorf("%w: cannot remove a conflicted path with update-index", ErrUnsupported)
		}
		r.Index.WriteRm(path)
		return nil
	}
	if !isInIndex && remove {
		return nil
	}
	return fmt.Errorf("%s: does not exist and --remove not passed", path)
}
