package porcelain

import (
	"fmt"
	"strings"

	"vcs/objstore"
	"vcs/repo"
)

// Log handles 'vcs log [<commit>]': walk the first-parent chain,
// newest first, printing each commit's hash, date and message.
func Log(args []string) {
	fs := newFlagSet("log", "Show commit logs.", "vcs log [<commit>]")
	fs.Parse(args[1:])

	pos := fs.Args()
	start := "HEAD"
	switch len(pos) {
	case 0:
	case 1:
		start = pos[0]
	default:
		fail("usage: vcs log [<commit>]")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}

	hash, err := r.ResolveCommit(start)
	if err != nil {
		fail("%v", err)
	}

	for hash != "" {
		content, ok, err := r.Store.Read(hash)
		if err != nil {
			fail("%v", err)
		}
		if !ok {
			break
		}

		fmt.Printf("commit %s\n", hash)
		fmt.Printf("Date: %s\n\n", objstore.CommitDate(content))
		for _, line := range strings.Split(objstore.CommitMessage(content), "\n") {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()

		parents := objstore.ParentHashes(content)
		if len(parents) == 0 {
			break
		}
		hash = parents[0]
	}
}
