// Package objstore implements the content-addressed object store: a
// mapping from hex hash to immutable byte content, plus the handful of
// commit/tree parsing helpers every other package builds on.
package objstore

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Kind classifies stored content.
type Kind string

const (
	Blob   Kind = "blob"
	Tree   Kind = "tree"
	Commit Kind = "commit"
)

// Store is the object database rooted at a repository's metadata directory.
type Store struct {
	dir string // <repo-meta>/objects
}

// New returns a Store rooted at metaDir/objects.
func New(metaDir string) *Store {
	return &Store{dir: filepath.Join(metaDir, "objects")}
}

// Hash computes the content-address of content. Any deterministic
// string-to-hex digest satisfies the store's contract; this uses blake2b.
func Hash(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (s *Store) path(hash string) string {
	return filepath.Join(s.dir, hash)
}

// Write stores content under its own hash and returns the hash. Idempotent.
func (s *Store) Write(content []byte) (string, error) {
	h := Hash(content)
	p := s.path(h)
	if _, err := os.Stat(p); err == nil {
		return h, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return "", err
	}
	return h, nil
}

// Read returns the stored content for hash, or ok=false if absent.
func (s *Store) Read(hash string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Exists reports whether hash is present in the store.
func (s *Store) Exists(hash string) bool {
	_, err := os.Stat(s.path(hash))
	return err == nil
}

// All enumerates every object's content currently in the store. Used by
// the naive whole-store transfer in fetch/push.
func (s *Store) All() ([][]byte, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([][]byte, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// Type classifies content by the first whitespace-delimited token of its
// first line: "commit" or "tree" are recognized, anything else is a blob.
func Type(content []byte) Kind {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	token := line
	if i := bytes.IndexByte(line, ' '); i >= 0 {
		token = line[:i]
	}
	switch string(token) {
	case string(Commit):
		return Commit
	case string(Tree):
		return Tree
	default:
		return Blob
	}
}

// TreeHash returns the second token of a commit object's first line.
func TreeHash(commit []byte) (string, bool) {
	lines := strings.SplitN(string(commit), "\n", 2)
	if len(lines) == 0 {
		return "", false
	}
	fields := strings.Fields(lines[0])
	if len(fields) != 2 || fields[0] != string(Commit) {
		return "", false
	}
	return fields[1], true
}

// ParentHashes returns the hash token of every "parent <hash>" line.
func ParentHashes(commit []byte) []string {
	var out []string
	for _, line := range strings.Split(string(commit), "\n") {
		if strings.HasPrefix(line, "parent ") {
			out = append(out, strings.TrimPrefix(line, "parent "))
		}
	}
	return out
}

// Ancestors returns the transitive closure of ParentHashes starting from
// commit hash c's own parents (duplicates are allowed; callers never
// depend on order).
func (s *Store) Ancestors(c string) ([]string, error) {
	var out []string
	queue := []string{c}
	seen := map[string]bool{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		content, ok, err := s.Read(cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, p := range ParentHashes(content) {
			out = append(out, p)
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return out, nil
}

// IsAncestor reports whether a is an ancestor of d.
func (s *Store) IsAncestor(d, a string) (bool, error) {
	ancestors, err := s.Ancestors(d)
	if err != nil {
		return false, err
	}
	for _, h := range ancestors {
		if h == a {
			return true, nil
		}
	}
	return false, nil
}

// IsUpToDate reports whether giver equals receiver or is an ancestor of it,
// i.e. receiver already contains everything giver has.
func (s *Store) IsUpToDate(receiver, giver string) (bool, error) {
	if receiver == "" {
		return false, nil
	}
	if receiver == giver {
		return true, nil
	}
	return s.IsAncestor(receiver, giver)
}

// ReadCommit returns a commit's tree hash and parent hashes.
func (s *Store) ReadCommit(hash string) (treeHash string, parents []string, err error) {
	content, ok, err := s.Read(hash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, fmt.Errorf("objstore: no such commit %s", hash)
	}
	if Type(content) != Commit {
		return "", nil, fmt.Errorf("objstore: %s is not a commit", hash)
	}
	tree, ok := TreeHash(content)
	if !ok {
		return "", nil, fmt.Errorf("objstore: commit %s has no tree line", hash)
	}
	return tree, ParentHashes(content), nil
}

// WriteCommit serializes and stores a commit object, returning its hash.
// date is caller-supplied (the clock is an external collaborator per spec.md).
func (s *Store) WriteCommit(treeHash string, parents []string, date string, message string) (string, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "commit %s\n", treeHash)
	for _, p := range parents {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", date)
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	return s.Write(b.Bytes())
}

// CommitMessage re-extracts the indented message body from a stored commit.
func CommitMessage(content []byte) string {
	parts := strings.SplitN(string(content), "\n\n", 2)
	if len(parts) != 2 {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(parts[1], "\n"), "\n") {
		lines = append(lines, strings.TrimPrefix(line, "    "))
	}
	return strings.Join(lines, "\n")
}

// CommitDate re-extracts the Date: line from a stored commit.
func CommitDate(content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "Date: ") {
			return strings.TrimPrefix(line, "Date: ")
		}
	}
	return ""
}
