package porcelain

import (
	"fmt"
	"os"

	"vcs/repo"
)

// Init handles 'vcs init [--bare] [<directory>]'.
func Init(args []string) {
	fs := newFlagSet("init",
		"Create an empty repository; refuses inside an existing one.",
		"vcs init [--bare] [<directory>]")
	bare := fs.Bool("bare", false, "Create a bare repository with no working copy.")
	fs.Parse(args[1:])

	dir := "."
	switch fs.NArg() {
	case 0:
	case 1:
		dir = fs.Arg(0)
	default:
		fail("usage: vcs init [--bare] [<directory>]")
	}

	r, err := repo.Init(dir, *bare)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Initialized empty vcs repository in %s\n", r.MetaDir)
	os.Exit(0)
}
