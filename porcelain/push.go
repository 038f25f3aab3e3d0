package porcelain

import (
	"fmt"

	"vcs/merge"
	"vcs/repo"
)

// Push handles 'vcs push [-f] <remote> <branch>'.
func Push(args []string) {
	fs := newFlagSet("push",
		"Update remote refs along with associated objects.",
		"vcs push [-f] <remote> <branch>")
	force := fs.Bool("f", false, "Force the push even if it is not a fast-forward.")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 2 {
		fail("usage: vcs push [-f] <remote> <branch>")
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

	localHash, ok, err := r.Refs.Hash("refs/heads/" + branch)
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("src refspec %s does not match any", branch)
	}

	objects, err := r.Store.All()
	if err != nil {
		fail("%v", err)
	}

	err = repo.WithRemote(url, func() error {
		remote, err := repo.Discover(".")
		if err != nil {
			return err
		}

		if checkedOut, attached, err := remote.Refs.HeadBranchName(); err == nil && attached && checkedOut == branch {
			return fmt.Errorf("refusing to update checked out branch %s", branch)
		}

		remoteHash, hadRemote, err := remote.Refs.Hash("refs/heads/" + branch)
		if err != nil {
			return err
		}
		if hadRemote && !*force {
			ff, err := merge.CanFastForward(r.Store, remoteHash, localHash)
			if err != nil {
				return err
			}
			if !ff {
				return fmt.Errorf("failed to push some refs to %s", url)
			}
		}

		for _, content := range objects {
			if _, err := remote.Store.Write(content); err != nil {
				return err
			}
		}
		return remote.Refs.Write("refs/heads/"+branch, localHash)
	})
	if err != nil {
		fail("%v", err)
	}

	if err := r.Refs.Write("refs/remotes/"+remoteName+"/"+branch, localHash); err != nil {
		fail("%v", err)
	}

	fmt.Printf("To %s\n   %s -> %s\n", url, shortHash(localHash), branch)
}
