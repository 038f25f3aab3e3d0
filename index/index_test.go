package index

import (
	"os"
	"path/filepath"
	"testing"

	"vcs/objstore"
)

func tempIndex(t *testing.T) (*Index, *objstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := objstore.New(filepath.Join(dir, ".gitlet"))
	idx, err := Load(filepath.Join(dir, "index"), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return idx, store, dir
}

func TestWriteNonConflictThenSave(t *testing.T) {
	idx, _, dir := tempIndex(t)

	hash, err := idx.WriteNonConflict("a.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("WriteNonConflict: %v", err)
	}
	if !idx.HasFile("a.txt", StageNone) {
		t.Error("HasFile false right after WriteNonConflict")
	}
	if got, ok := idx.Get("a.txt", StageNone); !ok || got != hash {
		t.Errorf("Get(a.txt) = (%q, %v), want (%q, true)", got, ok, hash)
	}

	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store := objstore.New(filepath.Join(dir, ".gitlet"))
	reloaded, err := Load(filepath.Join(dir, "index"), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reloaded.HasFile("a.txt", StageNone) {
		t.Error("reloaded index lost a.txt")
	}
}

func TestWriteRmClearsEntry(t *testing.T) {
	idx, _, _ := tempIndex(t)
	if _, err := idx.WriteNonConflict("a.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteNonConflict: %v", err)
	}
	idx.WriteRm("a.txt")
	if idx.HasFile("a.txt", StageNone) {
		t.Error("a.txt still present after WriteRm")
	}
}

func TestWriteConflictStages(t *testing.T) {
	idx, _, _ := tempIndex(t)
	base := "base-hash"
	idx.WriteConflict("c.txt", "receiver-hash", "giver-hash", &base)

	if !idx.HasFile("c.txt", StageBase) || !idx.HasFile("c.txt", StageReceiver) || !idx.HasFile("c.txt", StageGiver) {
		t.Error("WriteConflict did not populate all three stages")
	}
	conflicted := idx.ConflictedPaths()
	if len(conflicted) != 1 || conflicted[0] != "c.txt" {
		t.Errorf("ConflictedPaths = %v, want [c.txt]", conflicted)
	}
}

func TestWorkingCopyTOCSkipsDeletedFiles(t *testing.T) {
	idx, _, dir := tempIndex(t)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := idx.WriteNonConflict("a.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteNonConflict: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "a.txt")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	toc, err := idx.WorkingCopyTOC(dir)
	if err != nil {
		t.Fatalf("WorkingCopyTOC: %v", err)
	}
	if _, ok := toc["a.txt"]; ok {
		t.Error("WorkingCopyTOC included a path deleted from disk")
	}
}

func TestMatchingFiles(t *testing.T) {
	idx, _, _ := tempIndex(t)
	for _, p := range []string{"dir/a.txt", "dir/b.txt", "other.txt"} {
		if _, err := idx.WriteNonConflict(p, []byte(p)); err != nil {
			t.Fatalf("WriteNonConflict(%s): %v", p, err)
		}
	}

	got := idx.MatchingFiles("dir/a.txt")
	if len(got) != 1 || got[0] != "dir/a.txt" {
		t.Errorf("MatchingFiles(dir/a.txt) = %v", got)
	}

	got = idx.MatchingFiles("dir")
	if len(got) != 2 {
		t.Errorf("MatchingFiles(dir) = %v, want 2 entries", got)
	}
}
