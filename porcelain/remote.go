package porcelain

import (
	"fmt"

	"vcs/repo"
)

// Remote handles 'vcs remote [add <name> <url>]'. Only "add" is
// implemented; every other verb surfaces as explicitly unsupported.
func Remote(args []string) {
	fs := newFlagSet("remote",
		"Manage the set of tracked repositories.",
		"vcs remote add <name> <url>")
	fs.Parse(args[1:])

	pos := fs.Args()
	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}

	if len(pos) == 0 {
		for name, url := range r.Config.Remotes() {
			fmt.Printf("%s\t%s\n", name, url)
		}
		return
	}

	if pos[0] != "add" {
		fail("%v: remote %s", ErrUnsupported, pos[0])
	}
	if len(pos) != 3 {
		fail("usage: vcs remote add <name> <url>")
	}
	name, url := pos[1], pos[2]
	if err := r.Config.AddRemote(name, url); err != nil {
		fail("%v", err)
	}
	if err := r.SaveConfig(); err != nil {
		fail("%v", err)
	}
}
