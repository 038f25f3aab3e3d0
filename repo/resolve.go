package repo

import (
	"fmt"

	"vcs/objstore"
)

// ResolveCommit resolves name (a ref name or a raw hash — refstore.Hash's
// RefOrHash behavior) to a commit hash, verifying it names a commit
// object when the object store has one.
func (r *Repository) ResolveCommit(name string) (string, error) {
	hash, ok, err := r.Refs.Hash(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("unknown revision or path not in the working tree: %s", name)
	}
	if content, found, err := r.Store.Read(hash); err != nil {
		return "", err
	} else if found && objstore.Type(content) != objstore.Commit {
		return "", fmt.Errorf("%s is not a commit", name)
	}
	return hash, nil
}

// HeadCommitHash returns HEAD's commit hash, and false if there are no
// commits yet.
func (r *Repository) HeadCommitHash() (string, bool, error) {
	return r.Refs.Hash("HEAD")
}

// IsBranch reports whether name is a local branch.
func (r *Repository) IsBranch(name string) bool {
	return r.Refs.Exists("refs/heads/" + name)
}
