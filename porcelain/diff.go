package porcelain

import (
	"fmt"

	"vcs/repo"
	"vcs/vcsdiff"
)

// Diff handles 'vcs diff [<commit1> [<commit2>]]', printing "status
// path" lines via the single diff(hash1?, hash2?) entry point.
func Diff(args []string) {
	fs := newFlagSet("diff",
		"Show changes between commits, commit and working tree, etc.",
		"vcs diff [<commit1> [<commit2>]]")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) > 2 {
		fail("usage: vcs diff [<commit1> [<commit2>]]")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}

	var h1, h2 *string
	if len(pos) >= 1 {
		h, ok, err := r.Refs.Hash(pos[0])
		if err != nil {
			fail("%v", err)
		}
		if !ok {
			fail("unknown revision: %s", pos[0])
		}
		h1 = &h
	}
	if len(pos) == 2 {
		h, ok, err := r.Refs.Hash(pos[1])
		if err != nil {
			fail("%v", err)
		}
		if !ok {
			fail("unknown revision: %s", pos[1])
		}
		h2 = &h
	}

	d, err := r.Diff(h1, h2)
	if err != nil {
		fail("%v", err)
	}
	statuses := vcsdiff.NameStatus(d)
	for _, p := range vcsdiff.SortedPaths(d) {
		if status, ok := statuses[p]; ok {
			fmt.Printf("%s %s\n", status, p)
		}
	}
}
