package refstore

import (
	"path/filepath"
	"testing"

	"vcs/objstore"
)

func tempRefs(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	objs := objstore.New(dir)
	return New(dir, objs)
}

func TestSetHeadToBranchRoundTrip(t *testing.T) {
	r := tempRefs(t)
	if err := r.SetHeadToBranch("master"); err != nil {
		t.Fatalf("SetHeadToBranch: %v", err)
	}

	name, attached, err := r.HeadBranchName()
	if err != nil {
		t.Fatalf("HeadBranchName: %v", err)
	}
	if !attached || name != "master" {
		t.Errorf("HeadBranchName = (%q, %v), want (master, true)", name, attached)
	}

	detached, err := r.IsHeadDetached()
	if err != nil {
		t.Fatalf("IsHeadDetached: %v", err)
	}
	if detached {
		t.Error("IsHeadDetached true after SetHeadToBranch")
	}
}

func TestSetHeadDetached(t *testing.T) {
	r := tempRefs(t)
	if err := r.SetHeadDetached("deadbeef"); err != nil {
		t.Fatalf("SetHeadDetached: %v", err)
	}

	if _, attached, err := r.HeadBranchName(); err != nil || attached {
		t.Errorf("HeadBranchName attached=%v err=%v, want false/nil", attached, err)
	}
	detached, err := r.IsHeadDetached()
	if err != nil {
		t.Fatalf("IsHeadDetached: %v", err)
	}
	if !detached {
		t.Error("IsHeadDetached false after SetHeadDetached")
	}
}

func TestHashResolvesBranchRef(t *testing.T) {
	r := tempRefs(t)
	if err := r.Write("refs/heads/master", "abc123"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.SetHeadToBranch("master"); err != nil {
		t.Fatalf("SetHeadToBranch: %v", err)
	}

	hash, ok, err := r.Hash("HEAD")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !ok || hash != "abc123" {
		t.Errorf("Hash(HEAD) = (%q, %v), want (abc123, true)", hash, ok)
	}

	hash, ok, err = r.Hash("master")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !ok || hash != "abc123" {
		t.Errorf("Hash(master) = (%q, %v), want (abc123, true)", hash, ok)
	}
}

func TestCommitParentHashesDuringMerge(t *testing.T) {
	r := tempRefs(t)
	if err := r.Write("refs/heads/master", "head-hash"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.SetHeadToBranch("master"); err != nil {
		t.Fatalf("SetHeadToBranch: %v", err)
	}
	if err := r.SetMergeState("giver-hash", "Merge branch 'feat'"); err != nil {
		t.Fatalf("SetMergeState: %v", err)
	}

	parents, err := r.CommitParentHashes()
	if err != nil {
		t.Fatalf("CommitParentHashes: %v", err)
	}
	if len(parents) != 2 || parents[0] != "head-hash" || parents[1] != "giver-hash" {
		t.Errorf("CommitParentHashes = %v, want [head-hash giver-hash]", parents)
	}

	if err := r.ClearMergeState(); err != nil {
		t.Fatalf("ClearMergeState: %v", err)
	}
	if _, ok, err := r.MergeHeadHash(); err != nil || ok {
		t.Errorf("MergeHeadHash after clear: ok=%v err=%v", ok, err)
	}
}

func TestBranchesListsLocalRefs(t *testing.T) {
	r := tempRefs(t)
	if err := r.Write("refs/heads/master", "h1"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.Write("refs/heads/feat", "h2"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	branches, err := r.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 2 {
		t.Errorf("Branches = %v, want 2 entries", branches)
	}
}

func TestAppendFetchHeadAndResolve(t *testing.T) {
	r := tempRefs(t)
	if err := r.Write("refs/heads/master", "local-hash"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.SetHeadToBranch("master"); err != nil {
		t.Fatalf("SetHeadToBranch: %v", err)
	}
	if err := r.AppendFetchHead("remote-hash", "master", filepath.Join("..", "origin")); err != nil {
		t.Fatalf("AppendFetchHead: %v", err)
	}

	hash, ok, err := r.Hash("FETCH_HEAD")
	if err != nil {
		t.Fatalf("Hash(FETCH_HEAD): %v", err)
	}
	if !ok || hash != "remote-hash" {
		t.Errorf("Hash(FETCH_HEAD) = (%q, %v), want (remote-hash, true)", hash, ok)
	}
}
