// Package merge implements common-ancestor selection, fast-forward
// detection, the three-way merge diff, and the merge state machine
// described in spec.md §4.5.
package merge

import (
	"fmt"

	"vcs/index"
	"vcs/objstore"
	"vcs/refstore"
	"vcs/vcsdiff"
	"vcs/workingcopy"
)

// CommonAncestor picks a single most-recent common ancestor of a and b.
// {a,b} is sorted first so the result does not depend on argument order;
// in a criss-cross history this sort-order dependence can pick a
// different ancestor than a recursive merge-base would (spec.md §9).
func CommonAncestor(s *objstore.Store, a, b string) (string, bool, error) {
	x, y := a, b
	if y < x {
		x, y = y, x
	}

	ancestorsX, err := s.Ancestors(x)
	if err != nil {
		return "", false, err
	}
	candidates := append([]string{x}, ancestorsX...)

	ancestorsY, err := s.Ancestors(y)
	if err != nil {
		return "", false, err
	}
	inY := map[string]bool{y: true}
	for _, h := range ancestorsY {
		inY[h] = true
	}

	seen := map[string]bool{}
	for _, h := range candidates {
		if seen[h] {
			continue
		}
		seen[h] = true
		if inY[h] {
			return h, true, nil
		}
	}
	return "", false, nil
}

// CanFastForward reports whether giver can be reached by moving
// receiver's branch pointer forward: receiver is undefined (no commits
// yet) or receiver is an ancestor of giver.
func CanFastForward(s *objstore.Store, receiver, giver string) (bool, error) {
	if receiver == "" {
		return true, nil
	}
	return s.IsAncestor(giver, receiver)
}

// Diff computes the three-way merge diff of receiver against giver.
func Diff(s *objstore.Store, receiver, giver string) (vcsdiff.Diff, error) {
	receiverTOC, err := s.CommitTOC(receiver)
	if err != nil {
		return nil, err
	}
	giverTOC, err := s.CommitTOC(giver)
	if err != nil {
		return nil, err
	}

	base, _, err := CommonAncestor(s, receiver, giver)
	if err != nil {
		return nil, err
	}
	baseTOC, err := s.CommitTOC(base)
	if err != nil {
		return nil, err
	}

	return vcsdiff.TocDiff(receiverTOC, giverTOC, baseTOC), nil
}

// HasConflicts reports whether any path in d is CONFLICT.
func HasConflicts(d vcsdiff.Diff) bool {
	for _, e := range d {
		if e.Status == vcsdiff.Conflict {
			return true
		}
	}
	return false
}

// State is the repository's explicit merge disposition, derived from
// the presence of MERGE_HEAD rather than left implicit in marker files.
type State struct {
	Merging bool
	Giver   string // commit hash, valid when Merging
	Message string // MERGE_MSG content, valid when Merging
}

// DeriveState reads the current merge state from refs.
func DeriveState(refs *refstore.Store) (State, error) {
	giver, ok, err := refs.MergeHeadHash()
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{Merging: false}, nil
	}
	msg, _, err := refs.MergeMessage()
	if err != nil {
		return State{}, err
	}
	return State{Merging: true, Giver: giver, Message: msg}, nil
}

// FastForward points the current branch at giver, replaces the index
// with giver's TOC, and — if the repository has a working copy —
// reconciles it. It never enters the MERGING state.
func FastForward(s *objstore.Store, refs *refstore.Store, idx *index.Index, recon *workingcopy.Reconciler, branch, receiver, giver string, bare bool) error {
	if err := refs.Write("refs/heads/"+branch, giver); err != nil {
		return err
	}

	giverTOC, err := s.CommitTOC(giver)
	if err != nil {
		return err
	}
	idx.SetTOC(giverTOC)
	if err := idx.Save(); err != nil {
		return err
	}

	if !bare {
		receiverTOC, err := s.CommitTOC(receiver)
		if err != nil {
			return err
		}
		d := vcsdiff.TocDiff(receiverTOC, giverTOC, nil)
		if err := recon.Write(d); err != nil {
			return err
		}
	}
	return nil
}

// NonFastForward enters the MERGING state: writes MERGE_HEAD/MERGE_MSG,
// rebuilds the index from the merge diff (conflicts go to stages 2/3,
// everything else resolves to a stage-0 blob), and, if not bare,
// applies the merge diff to the working copy.
func NonFastForward(s *objstore.Store, refs *refstore.Store, idx *index.Index, recon *workingcopy.Reconciler, receiverRef, giverRef string, receiver, giver string, bare bool) (vcsdiff.Diff, error) {
	d, err := Diff(s, receiver, giver)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merge %s into %s", giverRef, receiverRef)
	if HasConflicts(d) {
		message += "\n\nConflicts:\n"
		for _, p := range vcsdiff.SortedPaths(d) {
			if d[p].Status == vcsdiff.Conflict {
				message += "\t" + p + "\n"
			}
		}
	}
	if err := refs.SetMergeState(giver, message); err != nil {
		return nil, err
	}

	rebuildIndexFromMergeDiff(idx, d)
	if err := idx.Save(); err != nil {
		return nil, err
	}

	if !bare {
		if err := recon.Write(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func rebuildIndexFromMergeDiff(idx *index.Index, d vcsdiff.Diff) {
	for path, e := range d {
		switch e.Status {
		case vcsdiff.Conflict:
			var base *string
			if e.Base != "" {
				b := e.Base
				base = &b
			}
			idx.WriteConflict(path, e.Receiver, e.Giver, base)
		case vcsdiff.Modify:
			idx.WriteRm(path)
			idx.Set(path, index.StageNone, e.Giver)
		case vcsdiff.Add, vcsdiff.Same:
			idx.WriteRm(path)
			hash := e.Receiver
			if hash == "" {
				hash = e.Giver
			}
			if hash != "" {
				idx.Set(path, index.StageNone, hash)
			}
		case vcsdiff.Delete:
			idx.WriteRm(path)
		}
	}
}
