package porcelain

import (
	"fmt"
	"sort"

	"vcs/repo"
)

// LsFiles handles 'vcs ls-files': list the index's stage-0 paths.
func LsFiles(args []string) {
	fs := newFlagSet("ls-files", "Show information about files in the index.", "vcs ls-files")
	fs.Parse(args[1:])

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}

	toc := r.Index.TOC()
	paths := make([]string, 0, len(toc))
	for p := range toc {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Println(p)
	}
}
