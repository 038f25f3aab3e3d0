// Package workingcopy reconciles a diff against the on-disk working tree:
// writing, deleting and conflict-marking files, then pruning directories
// left empty.
package workingcopy

import (
	"fmt"
	"os"
	"path/filepath"

	"vcs/objstore"
	"vcs/vcsdiff"
)

// Reconciler applies diffs to the working tree rooted at dir, excluding
// the repository's own metadata directory.
type Reconciler struct {
	dir     string
	metaDir string
	store   *objstore.Store
}

// New returns a Reconciler rooted at dir, whose metadata lives at metaDir.
func New(dir, metaDir string, store *objstore.Store) *Reconciler {
	return &Reconciler{dir: dir, metaDir: metaDir, store: store}
}

// Write applies every entry of d to the working tree.
func (r *Reconciler) Write(d vcsdiff.Diff) error {
	for path, e := range d {
		full := filepath.Join(r.dir, path)
		switch e.Status {
		case vcsdiff.Add, vcsdiff.Modify:
			hash := e.Giver
			if hash == "" {
				hash = e.Receiver
			}
			content, ok, err := r.store.Read(hash)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("workingcopy: missing blob %s for %s", hash, path)
			}
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(full, content, 0o644); err != nil {
				return err
			}
		case vcsdiff.Delete:
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return err
			}
		case vcsdiff.Conflict:
			merged, err := r.conflictMarkers(e)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(full, merged, 0o644); err != nil {
				return err
			}
		case vcsdiff.Same:
			// no-op
		}
	}
	return r.pruneEmptyDirs(r.dir)
}

func (r *Reconciler) conflictMarkers(e vcsdiff.Entry) ([]byte, error) {
	receiver, _, err := r.store.Read(e.Receiver)
	if err != nil {
		return nil, err
	}
	giver, _, err := r.store.Read(e.Giver)
	if err != nil {
		return nil, err
	}
	out := append([]byte{}, []byte("<<<<<<\n")...)
	out = append(out, receiver...)
	out = append(out, []byte("======\n")...)
	out = append(out, giver...)
	out = append(out, []byte(">>>>>>\n")...)
	return out, nil
}

// pruneEmptyDirs recursively removes directories under dir that are now
// empty, excluding the repository's own metadata directory.
func (r *Reconciler) pruneEmptyDirs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if full == r.metaDir {
			continue
		}
		if e.IsDir() {
			if err := r.pruneEmptyDirs(full); err != nil {
				return err
			}
		}
	}

	if dir == r.dir {
		return nil
	}

	entries, err = os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return os.Remove(dir)
	}
	return nil
}
