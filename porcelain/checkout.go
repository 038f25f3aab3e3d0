package porcelain

import (
	"fmt"

	"vcs/repo"
	"vcs/vcsdiff"
)

// Checkout handles 'vcs checkout <branch-or-commit>': refuses an
// unknown or already-current target, refuses to clobber unsaved
// working-copy changes, then applies diff(HEAD, target) and updates
// HEAD (attached to a branch, or detached at a bare commit hash).
func Checkout(args []string) {
	fs := newFlagSet("checkout",
		"Switch branches or restore working tree files.",
		"vcs checkout <branch-or-commit>")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 1 {
		fail("usage: vcs checkout <branch-or-commit>")
	}
	target := pos[0]

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}

	currentBranch, attached, err := r.Refs.HeadBranchName()
	if err != nil {
		fail("%v", err)
	}
	if attached && target == currentBranch {
		fmt.Printf("Already on %s\n", target)
		return
	}

	targetHash, err := r.ResolveCommit(target)
	if err != nil {
		fail("%v", err)
	}
	isBranch := r.IsBranch(target)

	if headHash, headOK, err := r.HeadCommitHash(); err != nil {
		fail("%v", err)
	} else if !isBranch && headOK && headHash == targetHash {
		fail("already on %s", target)
	}

	headToWorkingCopy, err := r.HeadToWorkingCopy()
	if err != nil {
		fail("%v", err)
	}
	headToTarget, err := r.HeadToTarget(targetHash)
	if err != nil {
		fail("%v", err)
	}
	if overwritten := vcsdiff.ChangedFilesCommitWouldOverwrite(headToWorkingCopy, headToTarget); len(overwritten) > 0 {
		fail("your local changes to the following files would be overwritten by checkout: %v", overwritten)
	}

	if err := r.Recon.Write(headToTarget); err != nil {
		fail("%v", err)
	}

	targetTOC, err := r.Store.CommitTOC(targetHash)
	if err != nil {
		fail("%v", err)
	}
	r.Index.SetTOC(targetTOC)
	if err := r.SaveIndex(); err != nil {
		fail("%v", err)
	}

	if isBranch {
		if err := r.Refs.SetHeadToBranch(target); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Switched to branch %s\n", target)
		return
	}

	if err := r.Refs.SetHeadDetached(targetHash); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Note: checking out %s.\nHEAD is now at %s\n", target, shortHash(targetHash))
}
