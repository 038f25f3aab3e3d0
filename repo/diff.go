package repo

import "vcs/vcsdiff"

// Diff expresses "index vs. commit", "working copy vs. commit", "commit
// vs. commit", etc. through one entry point, per spec.md §4.4: the
// receiver is hash1's commit TOC if given, else the index TOC; the
// giver is hash2's commit TOC if given, else the working-copy TOC.
func (r *Repository) Diff(hash1, hash2 *string) (vcsdiff.Diff, error) {
	receiver, err := r.receiverTOC(hash1)
	if err != nil {
		return nil, err
	}
	giver, err := r.giverTOC(hash2)
	if err != nil {
		return nil, err
	}
	return vcsdiff.TocDiff(receiver, giver, nil), nil
}

func (r *Repository) receiverTOC(hash1 *string) (map[string]string, error) {
	if hash1 != nil {
		return r.Store.CommitTOC(*hash1)
	}
	return r.Index.TOC(), nil
}

func (r *Repository) giverTOC(hash2 *string) (map[string]string, error) {
	if hash2 != nil {
		return r.Store.CommitTOC(*hash2)
	}
	return r.Index.WorkingCopyTOC(r.Root)
}

// HeadToWorkingCopy diffs HEAD's tree against the on-disk content of
// every stage-0 indexed path (Index.WorkingCopyTOC), used by rm's
// local-modification check and by the checkout/merge overwrite guard.
func (r *Repository) HeadToWorkingCopy() (vcsdiff.Diff, error) {
	headHash, ok, err := r.HeadCommitHash()
	if err != nil {
		return nil, err
	}
	var h1 *string
	if ok {
		h1 = &headHash
	}
	return r.Diff(h1, nil)
}

// HeadToTarget diffs HEAD against an arbitrary target commit.
func (r *Repository) HeadToTarget(targetHash string) (vcsdiff.Diff, error) {
	headHash, ok, err := r.HeadCommitHash()
	if err != nil {
		return nil, err
	}
	var h1, h2 *string
	if ok {
		h1 = &headHash
	}
	h2 = &targetHash
	return r.Diff(h1, h2)
}
