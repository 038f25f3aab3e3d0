package porcelain

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"vcs/index"
	"vcs/merge"
	"vcs/repo"
	"vcs/vcsdiff"
)

// Status handles 'vcs status': the branch/detached-HEAD header, a
// Conflicts/Unmerged-paths section when mid-merge, and the
// staged/unstaged/untracked buckets driven off vcsdiff.Diff rather
// than raw stat comparison.
func Status(args []string) {
	fs := newFlagSet("status", "Show the working tree status.", "vcs status")
	fs.Parse(args[1:])

	r, err := repo.Discover(".")
	if err != nil {
		fail("%v", err)
	}

	branch, attached, err := r.Refs.HeadBranchName()
	if err != nil {
		fail("%v", err)
	}
	if attached {
		fmt.Printf("On branch %s\n", branch)
	} else {
		hash, _, _ := r.HeadCommitHash()
		fmt.Printf("HEAD detached at %s\n", shortHash(hash))
	}

	state, err := merge.DeriveState(r.Refs)
	if err != nil {
		fail("%v", err)
	}
	if state.Merging {
		if conflicted := r.Index.ConflictedPaths(); len(conflicted) > 0 {
			fmt.Println("\nUnmerged paths:")
			for _, p := range conflicted {
				fmt.Printf("\tconflict:   %s\n", p)
			}
		}
	}

	headHash, _, err := r.HeadCommitHash()
	if err != nil {
		fail("%v", err)
	}
	headTOC, err := r.Store.CommitTOC(headHash)
	if err != nil {
		fail("%v", err)
	}
	indexTOC := r.Index.TOC()

	staged := vcsdiff.NameStatus(vcsdiff.TocDiff(headTOC, indexTOC, nil))
	if len(staged) > 0 {
		fmt.Println("\nChanges to be committed:")
		for _, p := range sortedStatusKeys(staged) {
			fmt.Printf("\t%s:   %s\n", statusLabel(staged[p]), p)
		}
	}

	if r.Bare {
		return
	}

	workingTOC, err := r.Index.WorkingCopyTOC(r.Root)
	if err != nil {
		fail("%v", err)
	}
	unstaged := vcsdiff.NameStatus(vcsdiff.TocDiff(indexTOC, workingTOC, nil))
	if len(unstaged) > 0 {
		fmt.Println("\nChanges not staged for commit:")
		for _, p := range sortedStatusKeys(unstaged) {
			fmt.Printf("\t%s:   %s\n", statusLabel(unstaged[p]), p)
		}
	}

	untracked, err := untrackedFiles(r)
	if err != nil {
		fail("%v", err)
	}
	if len(untracked) > 0 {
		fmt.Println("\nUntracked files:")
		for _, p := range untracked {
			fmt.Printf("\t%s\n", p)
		}
	}
}

func statusLabel(s vcsdiff.Status) string {
	switch s {
	case vcsdiff.Add:
		return "new file"
	case vcsdiff.Modify:
		return "modified"
	case vcsdiff.Delete:
		return "deleted"
	case vcsdiff.Conflict:
		return "conflict"
	default:
		return string(s)
	}
}

func sortedStatusKeys(m map[string]vcsdiff.Status) []string {
	out := make([]string, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// untrackedFiles walks the working copy for paths the index has never
// seen, excluding the repository's own metadata directory.
func untrackedFiles(r *repo.Repository) ([]string, error) {
	var out []string
	err := filepath.WalkDir(r.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == r.Root {
			return nil
		}
		if d.IsDir() {
			if path == r.MetaDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(r.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !r.Index.HasFile(rel, index.StageNone) {
			out = append(out, rel)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
