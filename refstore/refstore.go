// Package refstore implements the ref namespace and HEAD disposition:
// branches, remote-tracking refs, and the merge marker files.
package refstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"vcs/objstore"
)

const (
	HEAD       = "HEAD"
	MergeHead  = "MERGE_HEAD"
	MergeMsg   = "MERGE_MSG"
	FetchHead  = "FETCH_HEAD"
	headPrefix = "ref: "
)

var qualifiedRefPattern = regexp.MustCompile(`^refs/heads/[A-Za-z-]+$|^refs/remotes/[A-Za-z-]+/[A-Za-z-]+$`)

// Store is the ref namespace rooted at a repository's metadata directory.
type Store struct {
	dir   string
	store *objstore.Store
}

// New returns a Store rooted at metaDir, resolving object hashes against objs.
func New(metaDir string, objs *objstore.Store) *Store {
	return &Store{dir: metaDir, store: objs}
}

// IsRef reports whether s matches the qualified-ref grammar or is one of
// the three special names.
func IsRef(s string) bool {
	if s == HEAD || s == FetchHead || s == MergeHead {
		return true
	}
	return qualifiedRefPattern.MatchString(s)
}

func (r *Store) path(name string) string {
	return filepath.Join(r.dir, filepath.FromSlash(name))
}

// Exists reports whether the ref file name is present.
func (r *Store) Exists(name string) bool {
	_, err := os.Stat(r.path(name))
	return err == nil
}

// readLine returns the whitespace-trimmed content of a ref file (all of it,
// so multi-line MERGE_MSG survives), or ok=false if absent.
func (r *Store) readLine(name string) (string, bool, error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Write writes content (plus a trailing newline) to ref name.
func (r *Store) Write(name, content string) error {
	p := r.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(content+"\n"), 0o644)
}

// Rm deletes ref name, if present.
func (r *Store) Rm(name string) error {
	err := os.Remove(r.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TerminalRef resolves HEAD through one symbolic indirection: a branch
// ref ("refs/heads/<name>"), the literal "HEAD" if detached, or a
// fabricated "refs/heads/<s>" for a bare branch name.
func (r *Store) TerminalRef(s string) (string, error) {
	if s != HEAD {
		if IsRef(s) {
			return s, nil
		}
		return "refs/heads/" + s, nil
	}

	line, ok, err := r.readLine(HEAD)
	if err != nil {
		return "", err
	}
	if !ok {
		return "refs/heads/master", nil
	}
	if strings.HasPrefix(line, headPrefix) {
		return strings.TrimPrefix(line, headPrefix), nil
	}
	return HEAD, nil
}

// HeadBranchName extracts the branch name from HEAD when attached.
func (r *Store) HeadBranchName() (string, bool, error) {
	line, ok, err := r.readLine(HEAD)
	if err != nil || !ok {
		return "", false, err
	}
	if !strings.HasPrefix(line, headPrefix+"refs/heads/") {
		return "", false, nil
	}
	return strings.TrimPrefix(line, headPrefix+"refs/heads/"), true, nil
}

// IsHeadDetached reports whether HEAD names a commit directly.
func (r *Store) IsHeadDetached() (bool, error) {
	line, ok, err := r.readLine(HEAD)
	if err != nil || !ok {
		return false, err
	}
	return !strings.Contains(line, "refs"), nil
}

// SetHeadToBranch attaches HEAD to a local branch.
func (r *Store) SetHeadToBranch(branch string) error {
	return r.Write(HEAD, headPrefix+"refs/heads/"+branch)
}

// SetHeadDetached points HEAD directly at a commit hash.
func (r *Store) SetHeadDetached(hash string) error {
	return r.Write(HEAD, hash)
}

// Hash resolves a ref name to a commit hash, or passes s through unchanged
// if it is already a known object hash, so callers can use either uniformly.
func (r *Store) Hash(s string) (string, bool, error) {
	if s == FetchHead {
		return r.fetchHeadHash()
	}

	ref, err := r.TerminalRef(s)
	if err != nil {
		return "", false, err
	}
	if ref == HEAD {
		line, ok, err := r.readLine(HEAD)
		if err != nil || !ok {
			return "", false, err
		}
		return line, true, nil
	}
	if line, ok, err := r.readLine(ref); err != nil {
		return "", false, err
	} else if ok {
		return line, true, nil
	}

	if r.store != nil && r.store.Exists(s) {
		return s, true, nil
	}
	return "", false, nil
}

// fetchHeadHash returns the commit hash FETCH_HEAD most recently recorded
// for the branch HEAD currently names.
func (r *Store) fetchHeadHash() (string, bool, error) {
	branch, attached, err := r.HeadBranchName()
	if err != nil {
		return "", false, err
	}
	if !attached {
		return "", false, nil
	}

	data, err := os.ReadFile(r.path(FetchHead))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	latest, found := "", false
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		// "<hash> branch <branch> of <url>"; records are appended, so the
		// last match is the newest.
		fields := strings.Fields(line)
		if len(fields) >= 4 && fields[1] == "branch" && fields[2] == branch {
			latest, found = fields[0], true
		}
	}
	return latest, found, nil
}

// AppendFetchHead appends one fetch record.
func (r *Store) AppendFetchHead(hash, branch, url string) error {
	p := r.path(FetchHead)
	f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s branch %s of %s\n", hash, branch, url)
	return err
}

// MergeHeadHash returns the giver commit of an in-progress merge, if any.
func (r *Store) MergeHeadHash() (string, bool, error) {
	return r.readLine(MergeHead)
}

// SetMergeState records the start of a non-fast-forward merge.
func (r *Store) SetMergeState(giverHash, message string) error {
	if err := r.Write(MergeHead, giverHash); err != nil {
		return err
	}
	return r.Write(MergeMsg, message)
}

// ClearMergeState removes MERGE_HEAD and MERGE_MSG, ending a merge.
func (r *Store) ClearMergeState() error {
	if err := r.Rm(MergeHead); err != nil {
		return err
	}
	return r.Rm(MergeMsg)
}

// MergeMessage reads the pre-staged commit message for the merge in progress.
func (r *Store) MergeMessage() (string, bool, error) {
	return r.readLine(MergeMsg)
}

// CommitParentHashes returns the parents the next commit will record.
func (r *Store) CommitParentHashes() ([]string, error) {
	if giver, ok, err := r.MergeHeadHash(); err != nil {
		return nil, err
	} else if ok {
		headHash, headOK, err := r.Hash(HEAD)
		if err != nil {
			return nil, err
		}
		if !headOK {
			return []string{giver}, nil
		}
		return []string{headHash, giver}, nil
	}

	headHash, ok, err := r.Hash(HEAD)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []string{headHash}, nil
}

// Branches lists every local branch name.
func (r *Store) Branches() ([]string, error) {
	dir := filepath.Join(r.dir, "refs", "heads")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
