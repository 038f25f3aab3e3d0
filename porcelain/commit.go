package porcelain

import (
	"fmt"
	"strings"
	"time"

	"vcs/merge"
	"vcs/repo"
)

// Commit handles 'vcs commit -m <message>'. The message source is
// MERGE_MSG when mid-merge, else -m; parents come from
// Refs.CommitParentHashes, and a successful commit clears merge state.
func Commit(args []string) {
	fs := newFlagSet("commit",
		"Record changes to the repository.",
		"vcs commit -m <message>")
	message := fs.String("m", "", "Use the given <message> as the commit message.")
	fs.Parse(args[1:])

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}

	state, err := merge.DeriveState(r.Refs)
	if err != nil {
		fail("%v", err)
	}
	if state.Merging && len(r.Index.ConflictedPaths()) > 0 {
		fail("fix conflicts and then commit the result")
	}

	msg := *message
	if state.Merging {
		msg = state.Message
	}
	if msg == "" {
		fail("aborting commit due to empty commit message")
	}

	treeHash, err := r.Store.WriteTreeFromTOC(r.Index.TOC())
	if err != nil {
		fail("%v", err)
	}

	headHash, headOK, err := r.HeadCommitHash()
	if err != nil {
		fail("%v", err)
	}
	if headOK && !state.Merging {
		headTree, _, err := r.Store.ReadCommit(headHash)
		if err != nil {
			fail("%v", err)
		}
		if headTree == treeHash {
			fail("nothing to commit, working directory clean")
		}
	}

	parents, err := r.Refs.CommitParentHashes()
	if err != nil {
		fail("%v", err)
	}

	date := time.Now().UTC().Format(time.RFC3339)
	commitHash, err := r.Store.WriteCommit(treeHash, parents, date, msg)
	if err != nil {
		fail("%v", err)
	}

	branch, attached, err := r.Refs.HeadBranchName()
	if err != nil {
		fail("%v", err)
	}
	if attached {
		if err := r.Refs.Write("refs/heads/"+branch, commitHash); err != nil {
			fail("%v", err)
		}
	} else if err := r.Refs.SetHeadDetached(commitHash); err != nil {
		fail("%v", err)
	}

	if state.Merging {
		if err := r.Refs.ClearMergeState(); err != nil {
			fail("%v", err)
		}
	}

	firstLine, _, _ := strings.Cut(msg, "\n")
	fmt.Printf("[%s] %s\n", shortHash(commitHash), firstLine)
}
