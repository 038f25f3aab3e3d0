package porcelain

import (
	"fmt"

	"vcs/objstore"
	"vcs/repo"
)

// CatFile handles 'vcs cat-file (-p | -t | -s) <object>'.
func CatFile(args []string) {
	fs := newFlagSet("cat-file",
		"Provide content, type, or size information for repository objects.",
		"vcs cat-file (-p | -t | -s) <object>")
	pp := fs.Bool("p", false, "Pretty-print the contents of <object>.")
	size := fs.Bool("s", false, "Show the object size.")
	ty := fs.Bool("t", false, "Show the object type.")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 1 {
		fail("usage: vcs cat-file (-p | -t | -s) <object>")
	}
	set := 0
	for _, b := range []*bool{pp, size, ty} {
		if *b {
			set++
		}
	}
	if set != 1 {
		fail("usage: vcs cat-file (-p | -t | -s) <object>")
	}

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}
	content, ok, err := r.Store.Read(pos[0])
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("%s: no such object", pos[0])
	}

	switch {
	case *size:
		fmt.Println(len(content))
	case *ty:
		fmt.Println(objstore.Type(content))
	case *pp:
		fmt.Print(string(content))
	}
}
