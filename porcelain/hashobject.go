package porcelain

import (
	"fmt"
	"os"

	"vcs/objstore"
	"vcs/repo"
)

// HashObject handles 'vcs hash-object [-w] <file>'.
func HashObject(args []string) {
	fs := newFlagSet("hash-object",
		"Compute an object id and optionally write it into the object database.",
		"vcs hash-object [-w] <file>")
	write := fs.Bool("w", false, "Write the object into the object database.")
	fs.Parse(args[1:])

	pos := fs.Args()
	if len(pos) != 1 {
		fail("usage: vcs hash-object [-w] <file>")
	}

	data, err := os.ReadFile(pos[0])
	if err != nil {
		fail("%v", err)
	}

	if *write {
		r, err := repo.Discover(".")
		if err != nil {
			fail("%v", err)
		}
		hash, err := r.Store.Write(data)
		if err != nil {
			fail("%v", err)
		}
		fmt.Println(hash)
		return
	}

	fmt.Println(objstore.Hash(data))
}
