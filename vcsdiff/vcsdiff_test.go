package vcsdiff

import (
	"testing"

	"vcs/objstore"
)

func TestTocDiffTwoWay(t *testing.T) {
	receiver := objstore.TOC{"same.txt": "h1", "removed.txt": "h2"}
	giver := objstore.TOC{"same.txt": "h1", "added.txt": "h3"}

	d := TocDiff(receiver, giver, nil)

	if d["same.txt"].Status != Same {
		t.Errorf("same.txt = %v, want Same", d["same.txt"].Status)
	}
	if d["removed.txt"].Status != Delete {
		t.Errorf("removed.txt = %v, want Delete", d["removed.txt"].Status)
	}
	if d["added.txt"].Status != Add {
		t.Errorf("added.txt = %v, want Add", d["added.txt"].Status)
	}
}

func TestTocDiffModify(t *testing.T) {
	receiver := objstore.TOC{"file.txt": "h1"}
	giver := objstore.TOC{"file.txt": "h2"}

	d := TocDiff(receiver, giver, nil)
	if d["file.txt"].Status != Modify {
		t.Errorf("file.txt = %v, want Modify", d["file.txt"].Status)
	}
}

func TestTocDiffThreeWayConflict(t *testing.T) {
	base := objstore.TOC{"file.txt": "base"}
	receiver := objstore.TOC{"file.txt": "r-edit"}
	giver := objstore.TOC{"file.txt": "g-edit"}

	d := TocDiff(receiver, giver, base)
	if d["file.txt"].Status != Conflict {
		t.Errorf("file.txt = %v, want Conflict", d["file.txt"].Status)
	}
}

func TestTocDiffThreeWaySameEditNoConflict(t *testing.T) {
	base := objstore.TOC{"file.txt": "base"}
	receiver := objstore.TOC{"file.txt": "edit"}
	giver := objstore.TOC{"file.txt": "edit"}

	d := TocDiff(receiver, giver, base)
	if d["file.txt"].Status != Same {
		t.Errorf("file.txt = %v, want Same (both sides made the identical edit)", d["file.txt"].Status)
	}
}

func TestNameStatusOmitsSame(t *testing.T) {
	d := Diff{
		"same.txt":    {Status: Same},
		"changed.txt": {Status: Modify},
	}
	ns := NameStatus(d)
	if _, ok := ns["same.txt"]; ok {
		t.Error("NameStatus included a Same entry")
	}
	if ns["changed.txt"] != Modify {
		t.Errorf("NameStatus[changed.txt] = %v, want Modify", ns["changed.txt"])
	}
}

func TestChangedFilesCommitWouldOverwrite(t *testing.T) {
	headToWorkingCopy := Diff{
		"dirty.txt": {Status: Modify},
		"clean.txt": {Status: Same},
	}
	headToTarget := Diff{
		"dirty.txt": {Status: Modify},
		"clean.txt": {Status: Modify},
	}

	overwritten := ChangedFilesCommitWouldOverwrite(headToWorkingCopy, headToTarget)
	if len(overwritten) != 1 || overwritten[0] != "dirty.txt" {
		t.Errorf("ChangedFilesCommitWouldOverwrite = %v, want [dirty.txt]", overwritten)
	}
}

func TestSortedPaths(t *testing.T) {
	d := Diff{"c.txt": {Status: Modify}, "a.txt": {Status: Modify}, "b.txt": {Status: Modify}}
	got := SortedPaths(d)
	want := []string{"a.txt", "b.txt", "c.txt"}
	for i, p := range want {
		if got[i] != p {
			t.Fatalf("SortedPaths = %v, want %v", got, want)
		}
	}
}
