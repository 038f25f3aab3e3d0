package porcelain

import (
	"vcs/repo"
)

// Pull handles 'vcs pull <remote> <branch>': fetch, then merge FETCH_HEAD.
func Pull(args []string) {
	fs := newFlagSet("pull",
		"Fetch from and integrate with another repository.",
		"vcs pull <remote> <branch>")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 2 {
		fail("usage: vcs pull <remote> <branch>")
	}
	remoteName, branch := pos[0], pos[1]

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	if r.Bare {
		fail("this operation must be run in a work tree")
	}
	url, ok := r.Config.RemoteURL(remoteName)
	if !ok {
		fail("%s does not appear to be a vcs remote", remoteName)
	}
	if err := doFetch(r, remoteName, url, branch); err != nil {
		fail("%v", err)
	}

	giverHash, ok, err := r.Refs.Hash("FETCH_HEAD")
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("no remote tracking information for %s", branch)
	}

	runMerge(r, "FETCH_HEAD", giverHash)
}
