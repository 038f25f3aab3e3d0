package porcelain

import (
	"fmt"
	"sort"

	"vcs/repo"
)

// Branch handles 'vcs branch [-d] [<name>]': list branches (marking
// HEAD's) when name is absent, delete with -d, or create at HEAD.
func Branch(args []string) {
	fs := newFlagSet("branch",
		"List, create, or delete branches.",
		"vcs branch [-d] [<name>]")
	del := fs.Bool("d", false, "Delete the branch named <name>.")
	fs.Parse(args[1:])

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	pos := fs.Args()

	if *del {
		if len(pos) != 1 {
			fail("usage: vcs branch -d <name>")
		}
		name := pos[0]
		current, attached, err := r.Refs.HeadBranchName()
		if err != nil {
			fail("%v", err)
		}
		if attached && current == name {
			fail("cannot delete branch %s: checked out", name)
		}
		if !r.IsBranch(name) {
			fail("branch %s not found", name)
		}
		if err := r.Refs.Rm("refs/heads/" + name); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Deleted branch %s\n", name)
		return
	}

	if len(pos) == 0 {
		branches, err := r.Refs.Branches()
		if err != nil {
			fail("%v", err)
		}
		sort.Strings(branches)
		current, attached, err := r.Refs.HeadBranchName()
		if err != nil {
			fail("%v", err)
		}
		for _, b := range branches {
			marker := "  "
			if attached && b == current {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, b)
		}
		return
	}

	if len(pos) != 1 {
		fail("usage: vcs branch [-d] [<name>]")
	}
	name := pos[0]

	headHash, ok, err := r.HeadCommitHash()
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("not a valid object name: HEAD")
	}
	if r.IsBranch(name) {
		fail("A branch named %s already exists", name)
	}
	if err := r.Refs.Write("refs/heads/"+name, headHash); err != nil {
		fail("%v", err)
	}
}
