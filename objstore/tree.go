package objstore

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"
)

// EntryKind distinguishes a tree entry's referent.
type EntryKind string

const (
	EntryBlob EntryKind = "blob"
	EntryTree EntryKind = "tree"
)

// TreeEntry is one line of a serialized tree object.
type TreeEntry struct {
	Kind EntryKind
	Hash string
	Name string
}

// Node is the typed, in-memory shape of a directory: either a Blob leaf
// (a stored hash) or a Tree of named children. Exactly one of Blob/Children
// is meaningful, selected by Kind — this replaces the untyped nested-map
// representation spec.md's source pattern used for trees.
type Node struct {
	Kind     EntryKind
	Blob     string
	Children map[string]*Node
}

// BlobNode wraps a blob hash as a leaf Node.
func BlobNode(hash string) *Node {
	return &Node{Kind: EntryBlob, Blob: hash}
}

// NewTreeNode returns an empty directory Node.
func NewTreeNode() *Node {
	return &Node{Kind: EntryTree, Children: map[string]*Node{}}
}

// Insert places a blob hash at a slash-separated path within root,
// creating intermediate directory nodes as needed.
func Insert(root *Node, path string, hash string) {
	parts := strings.Split(path, "/")
	cur := root
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur.Children[part]
		if !ok || child.Kind != EntryTree {
			child = NewTreeNode()
			cur.Children[part] = child
		}
		cur = child
	}
	cur.Children[parts[len(parts)-1]] = BlobNode(hash)
}

// WriteTree serializes node bottom-up (blobs are already stored by the
// caller; here only tree objects are written) and returns its hash.
func WriteTree(s *Store, node *Node) (string, error) {
	if node.Kind != EntryTree {
		return "", fmt.Errorf("objstore: WriteTree called on a non-tree node")
	}

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	var b bytes.Buffer
	for _, name := range names {
		child := node.Children[name]
		switch child.Kind {
		case EntryTree:
			hash, err := WriteTree(s, child)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "tree %s %s\n", hash, name)
		case EntryBlob:
			fmt.Fprintf(&b, "blob %s %s\n", child.Blob, name)
		}
	}
	return s.Write(b.Bytes())
}

// ReadTree decodes one level of a stored tree object.
func (s *Store) ReadTree(hash string) ([]TreeEntry, error) {
	content, ok, err := s.Read(hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("objstore: no such tree %s", hash)
	}
	// A tree is entry lines only, so Type reports Blob for a tree whose
	// first entry is a blob; every line's kind is checked below instead.
	if Type(content) == Commit {
		return nil, fmt.Errorf("objstore: %s is not a tree", hash)
	}

	var entries []TreeEntry
	for _, line := range strings.Split(strings.TrimRight(string(content), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("objstore: corrupt tree entry %q", line)
		}
		kind := EntryKind(fields[0])
		if kind != EntryBlob && kind != EntryTree {
			return nil, fmt.Errorf("objstore: corrupt tree entry kind %q", fields[0])
		}
		entries = append(entries, TreeEntry{Kind: kind, Hash: fields[1], Name: fields[2]})
	}
	return entries, nil
}

// FileTree recursively materializes a tree hash into a typed Node.
func (s *Store) FileTree(hash string) (*Node, error) {
	entries, err := s.ReadTree(hash)
	if err != nil {
		return nil, err
	}
	node := NewTreeNode()
	for _, e := range entries {
		switch e.Kind {
		case EntryBlob:
			node.Children[e.Name] = BlobNode(e.Hash)
		case EntryTree:
			child, err := s.FileTree(e.Hash)
			if err != nil {
				return nil, err
			}
			node.Children[e.Name] = child
		}
	}
	return node, nil
}

// TOC is a flattened path -> blob-hash view of a tree, as spec.md §4.1 defines it.
type TOC map[string]string

// Flatten walks node and returns its table-of-contents.
func Flatten(node *Node) TOC {
	out := TOC{}
	flattenInto(node, "", out)
	return out
}

func flattenInto(node *Node, prefix string, out TOC) {
	for name, child := range node.Children {
		p := name
		if prefix != "" {
			p = path.Join(prefix, name)
		}
		switch child.Kind {
		case EntryBlob:
			out[p] = child.Blob
		case EntryTree:
			flattenInto(child, p, out)
		}
	}
}

// CommitTOC reads a commit's tree and flattens it. An empty commit hash
// (no commits yet) yields an empty TOC.
func (s *Store) CommitTOC(commitHash string) (TOC, error) {
	if commitHash == "" {
		return TOC{}, nil
	}
	treeHash, _, err := s.ReadCommit(commitHash)
	if err != nil {
		return nil, err
	}
	node, err := s.FileTree(treeHash)
	if err != nil {
		return nil, err
	}
	return Flatten(node), nil
}

// WriteTreeFromTOC builds and writes the tree for a flattened TOC.
func (s *Store) WriteTreeFromTOC(toc TOC) (string, error) {
	root := NewTreeNode()
	for path, hash := range toc {
		Insert(root, path, hash)
	}
	return WriteTree(s, root)
}
