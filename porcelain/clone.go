package porcelain

import (
	"fmt"
	"os"
	"path/filepath"

	"vcs/merge"
	"vcs/repo"
)

// Clone handles 'vcs clone [--bare] <src> <dst>': validates src is a
// repository and dst is empty-or-absent, inits dst, records "origin",
// and — if src has a master branch — fetches and fast-forwards it.
func Clone(args []string) {
	fs := newFlagSet("clone",
		"Clone a repository into a new directory.",
		"vcs clone [--bare] <src> <dst>")
	bare := fs.Bool("bare", false, "Make a bare repository.")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 2 {
		fail("usage: vcs clone [--bare] <src> <dst>")
	}
	src, dst := pos[0], pos[1]

	srcRepo, err := repo.Discover(src)
	if err != nil {
		fail("%s does not appear to be a vcs repository", src)
	}
	if entries, err := os.ReadDir(dst); err == nil && len(entries) > 0 {
		fail("destination path %s already exists and is not empty", dst)
	}

	dstRepo, err := repo.Init(dst, *bare)
	if err != nil {
		fail("%v", err)
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		fail("%v", err)
	}
	if err := dstRepo.Config.AddRemote("origin", absSrc); err != nil {
		fail("%v", err)
	}
	if err := dstRepo.SaveConfig(); err != nil {
		fail("%v", err)
	}

	fmt.Printf("Cloning into %s...\n", dst)

	if !srcRepo.IsBranch("master") {
		return
	}
	if err := doFetch(dstRepo, "origin", absSrc, "master"); err != nil {
		fail("%v", err)
	}

	giverHash, ok, err := dstRepo.Refs.Hash("refs/remotes/origin/master")
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		return
	}
	if err := merge.FastForward(dstRepo.Store, dstRepo.Refs, dstRepo.Index, dstRepo.Recon, "master", "", giverHash, dstRepo.Bare); err != nil {
		fail("%v", err)
	}
}
