package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLaysOutMetadata(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.Bare {
		t.Error("Init(bare=false).Bare = true")
	}

	for _, p := range []string{"HEAD", "objects", filepath.Join("refs", "heads"), "config"} {
		if _, err := os.Stat(filepath.Join(r.MetaDir, p)); err != nil {
			t.Errorf("missing %s after Init: %v", p, err)
		}
	}

	branch, attached, err := r.Refs.HeadBranchName()
	if err != nil {
		t.Fatalf("HeadBranchName: %v", err)
	}
	if !attached || branch != "master" {
		t.Errorf("HeadBranchName = (%q, %v), want (master, true)", branch, attached)
	}
}

func TestInitRefusesExistingRepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(dir, false); err == nil {
		t.Error("second Init at the same root should fail")
	}
}

func TestDiscoverWalksUpFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	r, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	absDir, _ := filepath.Abs(dir)
	if r.Root != absDir {
		t.Errorf("Discover root = %q, want %q", r.Root, absDir)
	}
}

func TestDiscoverFailsOutsideAnyRepository(t *testing.T) {
	if _, err := Discover(t.TempDir()); err != ErrNotARepository {
		t.Errorf("Discover outside any repo = %v, want ErrNotARepository", err)
	}
}

func TestResolveCommitRejectsNonCommit(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	blobHash, err := r.Store.Write([]byte("not a commit"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.Refs.Write("refs/heads/bogus", blobHash); err != nil {
		t.Fatalf("Write ref: %v", err)
	}

	if _, err := r.ResolveCommit("bogus"); err == nil {
		t.Error("ResolveCommit accepted a branch pointing at a blob")
	}
}

func TestIsBranch(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.IsBranch("master") {
		t.Error("IsBranch(master) true before any commit exists")
	}
	if err := r.Refs.Write("refs/heads/master", "whatever"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !r.IsBranch("master") {
		t.Error("IsBranch(master) false after creating the ref")
	}
}

func TestHeadToWorkingCopyDetectsUnstagedEdit(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.Index.WriteNonConflict("a.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteNonConflict: %v", err)
	}

	treeHash, err := r.Store.WriteTreeFromTOC(r.Index.TOC())
	if err != nil {
		t.Fatalf("WriteTreeFromTOC: %v", err)
	}
	commitHash, err := r.Store.WriteCommit(treeHash, nil, "2026-01-01T00:00:00Z", "initial")
	if err != nil {
		t.Fatalf("WriteCommit: %v", err)
	}
	if err := r.Refs.Write("refs/heads/master", commitHash); err != nil {
		t.Fatalf("Write: %v", err)
	}

	d, err := r.HeadToWorkingCopy()
	if err != nil {
		t.Fatalf("HeadToWorkingCopy: %v", err)
	}
	if e, ok := d["a.txt"]; !ok || e.Status != "SAME" {
		t.Errorf("a.txt = %+v, want SAME before any edit", d["a.txt"])
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err = r.HeadToWorkingCopy()
	if err != nil {
		t.Fatalf("HeadToWorkingCopy: %v", err)
	}
	if e, ok := d["a.txt"]; !ok || e.Status != "MODIFY" {
		t.Errorf("a.txt = %+v, want MODIFY after editing the working copy", d["a.txt"])
	}
}
