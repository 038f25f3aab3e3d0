package objstore

import (
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func TestHashDeterministic(t *testing.T) {
	data := []byte("hello world")
	h1 := Hash(data)
	h2 := Hash(data)
	if h1 != h2 {
		t.Errorf("Hash not deterministic: %q != %q", h1, h2)
	}
	if Hash([]byte("other")) == h1 {
		t.Error("different input produced the same hash")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := tempStore(t)
	data := []byte("blob content")

	hash, err := s.Write(data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if hash != Hash(data) {
		t.Errorf("Write returned %q, want %q", hash, Hash(data))
	}

	got, ok, err := s.Read(hash)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !ok {
		t.Fatal("Read reported missing object that was just written")
	}
	if string(got) != string(data) {
		t.Errorf("Read returned %q, want %q", got, data)
	}

	if !s.Exists(hash) {
		t.Error("Exists false for a written object")
	}
}

func TestReadMissing(t *testing.T) {
	s := tempStore(t)
	_, ok, err := s.Read("0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ok {
		t.Error("Read reported ok for an object never written")
	}
}

func TestTypeClassification(t *testing.T) {
	cases := []struct {
		content string
		want    Kind
	}{
		{"blob contents here", Blob},
		{"tree\n1 abc\tfile.txt\n", Tree},
		{"commit\ntree abc\n\nmessage\n", Commit},
		{"", Blob},
	}
	for _, c := range cases {
		if got := Type([]byte(c.content)); got != c.want {
			t.Errorf("Type(%q) = %v, want %v", c.content, got, c.want)
		}
	}
}

func TestWriteCommitAndReadBack(t *testing.T) {
	s := tempStore(t)
	treeHash, err := s.Write([]byte("tree\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	commitHash, err := s.WriteCommit(treeHash, nil, "2026-01-01T00:00:00Z", "initial commit")
	if err != nil {
		t.Fatalf("WriteCommit: %v", err)
	}

	gotTree, parents, err := s.ReadCommit(commitHash)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if gotTree != treeHash {
		t.Errorf("ReadCommit tree = %q, want %q", gotTree, treeHash)
	}
	if len(parents) != 0 {
		t.Errorf("ReadCommit parents = %v, want none", parents)
	}

	content, ok, err := s.Read(commitHash)
	if err != nil || !ok {
		t.Fatalf("Read(commitHash): ok=%v err=%v", ok, err)
	}
	if msg := CommitMessage(content); msg != "initial commit" {
		t.Errorf("CommitMessage = %q, want %q", msg, "initial commit")
	}
	if Type(content) != Commit {
		t.Errorf("Type(commit) = %v, want Commit", Type(content))
	}
}

func TestAncestry(t *testing.T) {
	s := tempStore(t)
	tree, _ := s.Write([]byte("tree\n"))

	root, err := s.WriteCommit(tree, nil, "2026-01-01T00:00:00Z", "root")
	if err != nil {
		t.Fatalf("WriteCommit root: %v", err)
	}
	child, err := s.WriteCommit(tree, []string{root}, "2026-01-02T00:00:00Z", "child")
	if err != nil {
		t.Fatalf("WriteCommit child: %v", err)
	}

	isAncestor, err := s.IsAncestor(child, root)
	if err != nil {
		t.Fatalf("IsAncestor: %v", err)
	}
	if !isAncestor {
		t.Error("root should be an ancestor of child")
	}

	isAncestor, err = s.IsAncestor(root, child)
	if err != nil {
		t.Fatalf("IsAncestor: %v", err)
	}
	if isAncestor {
		t.Error("child should not be an ancestor of root")
	}

	upToDate, err := s.IsUpToDate(child, root)
	if err != nil {
		t.Fatalf("IsUpToDate: %v", err)
	}
	if !upToDate {
		t.Error("child receiving root should be up to date")
	}
}
