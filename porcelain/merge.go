package porcelain

import (
	"fmt"

	"vcs/merge"
	"vcs/repo"
	"vcs/vcsdiff"
)

// Merge handles 'vcs merge <branch-or-ref>'.
func Merge(args []string) {
	fs := newFlagSet("merge",
		"Join two or more development histories together.",
		"vcs merge <branch-or-ref>")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 1 {
		fail("usage: vcs merge <branch-or-ref>")
	}
	giverRef := pos[0]

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}

	giverHash, ok, err := r.Refs.Hash(giverRef)
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("%s - not something we can merge", giverRef)
	}

	runMerge(r, giverRef, giverHash)
}

// runMerge implements the fast-forward/three-way merge decision,
// shared by 'vcs merge' and the merge half of 'vcs pull'.
func runMerge(r *repo.Repository, giverRef, giverHash string) {
	branch, attached, err := r.Refs.HeadBranchName()
	if err != nil {
		fail("%v", err)
	}
	if !attached {
		fail("%v: merge into detached HEAD", ErrUnsupported)
	}

	receiverHash, _, err := r.HeadCommitHash()
	if err != nil {
		fail("%v", err)
	}

	if upToDate, err := r.Store.IsUpToDate(receiverHash, giverHash); err != nil {
		fail("%v", err)
	} else if upToDate {
		fmt.Println("Already up to date.")
		return
	}

	headToWorkingCopy, err := r.HeadToWorkingCopy()
	if err != nil {
		fail("%v", err)
	}
	headToGiver, err := r.HeadToTarget(giverHash)
	if err != nil {
		fail("%v", err)
	}
	if overwritten := vcsdiff.ChangedFilesCommitWouldOverwrite(headToWorkingCopy, headToGiver); len(overwritten) > 0 {
		fail("your local changes to the following files would be overwritten by merge: %v", overwritten)
	}

	canFF, err := merge.CanFastForward(r.Store, receiverHash, giverHash)
	if err != nil {
		fail("%v", err)
	}

	if canFF {
		if err := merge.FastForward(r.Store, r.Refs, r.Index, r.Recon, branch, receiverHash, giverHash, r.Bare); err != nil {
			fail("%v", err)
		}
		fmt.Println("Fast-forward")
		return
	}

	d, err := merge.NonFastForward(r.Store, r.Refs, r.Index, r.Recon, branch, giverRef, receiverHash, giverHash, r.Bare)
	if err != nil {
		fail("%v", err)
	}
	if merge.HasConflicts(d) {
		fmt.Println("Automatic merge failed. Fix conflicts and commit the result.")
	} else {
		fmt.Println("Merge made by the three-way strategy.")
	}
}
