package porcelain

import (
	"fmt"

	"vcs/repo"
)

// Fetch handles 'vcs fetch <remote> <branch>'.
func Fetch(args []string) {
	fs := newFlagSet("fetch",
		"Download objects and refs from another repository.",
		"vcs fetch <remote> <branch>")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 2 {
		fail("usage: vcs fetch <remote> <branch>")
	}
	remoteName, branch := pos[0], pos[1]

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	url, ok := r.Config.RemoteURL(remoteName)
	if !ok {
		fail("%s does not appear to be a vcs remote", remoteName)
	}

	if err := doFetch(r, remoteName, url, branch); err != nil {
		fail("%v", err)
	}
}

// doFetch fetches a branch from a sibling repository reached through
// repo.WithRemote's scoped directory swap; it is also called from Pull.
func doFetch(r *repo.Repository, remoteName, url, branch string) error {
	var newHash string
	var objects [][]byte

	err := repo.WithRemote(url, func() error {
		remote, err := repo.Discover(".")
		if err != nil {
			return err
		}
		hash, ok, err := remote.Refs.Hash("refs/heads/" + branch)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("couldn't find remote ref %s", branch)
		}
		newHash = hash

		all, err := remote.Store.All()
		if err != nil {
			return err
		}
		objects = all
		return nil
	})
	if err != nil {
		return err
	}

	for _, content := range objects {
		if _, err := r.Store.Write(content); err != nil {
			return err
		}
	}

	prevHash, hadPrev, err := r.Refs.Hash("refs/remotes/" + remoteName + "/" + branch)
	if err != nil {
		return err
	}

	if err := r.Refs.Write("refs/remotes/"+remoteName+"/"+branch, newHash); err != nil {
		return err
	}
	if err := r.Refs.AppendFetchHead(newHash, branch, url); err != nil {
		return err
	}

	forced := false
	if hadPrev && prevHash != newHash {
		descends, err := r.Store.IsAncestor(newHash, prevHash)
		if err != nil {
			return err
		}
		forced = !descends
	}

	fmt.Printf("From %s\n", url)
	if forced {
		fmt.Printf(" + %s -> %s/%s (forced)\n", shortHash(newHash), remoteName, branch)
	} else {
		fmt.Printf("   %s -> %s/%s\n", shortHash(newHash), remoteName, branch)
	}
	return nil
}
