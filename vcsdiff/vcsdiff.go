// Package vcsdiff implements the three-way TOC diff described in
// spec.md §4.4: comparing receiver/base/giver path->hash maps and
// classifying every path's status.
package vcsdiff

import (
	"sort"

	"vcs/objstore"
)

// Status classifies how a path changed between receiver, base and giver.
type Status string

const (
	Add      Status = "ADD"
	Modify   Status = "MODIFY"
	Delete   Status = "DELETE"
	Same     Status = "SAME"
	Conflict Status = "CONFLICT"
)

// Entry is one path's three-way comparison result. Receiver/Base/Giver
// are hashes, or the empty string when absent on that side.
type Entry struct {
	Status   Status
	Receiver string
	Base     string
	Giver    string
}

// Diff maps path -> Entry.
type Diff map[string]Entry

func present(h string) bool { return h != "" }

// TocDiff compares receiver and giver against base (receiver is used as
// the base when none is given — a two-way diff).
func TocDiff(receiver, giver objstore.TOC, base objstore.TOC) Diff {
	if base == nil {
		base = receiver
	}

	paths := map[string]bool{}
	for p := range receiver {
		paths[p] = true
	}
	for p := range base {
		paths[p] = true
	}
	for p := range giver {
		paths[p] = true
	}

	out := Diff{}
	for p := range paths {
		r, rOK := receiver[p]
		b, bOK := base[p]
		g, gOK := giver[p]
		out[p] = classify(r, rOK, b, bOK, g, gOK)
	}
	return out
}

func classify(r string, rOK bool, b string, bOK bool, g string, gOK bool) Entry {
	e := Entry{}
	if rOK {
		e.Receiver = r
	}
	if bOK {
		e.Base = b
	}
	if gOK {
		e.Giver = g
	}

	switch {
	case rOK && gOK && r == g:
		e.Status = Same
	case rOK && gOK && r != g && bOK && r != b && g != b:
		e.Status = Conflict
	case rOK && gOK && r != g:
		e.Status = Modify
	case !rOK && !bOK && gOK:
		e.Status = Add
	case rOK && !bOK && !gOK:
		e.Status = Add
	case rOK && bOK && !gOK:
		e.Status = Delete
	case !rOK && bOK && gOK:
		e.Status = Delete
	default:
		// No side present, or an otherwise-unlisted combination collapses
		// to SAME: both receiver and giver agree (both absent) or the
		// table's remaining cases never disagree in a way the other
		// branches don't already cover.
		e.Status = Same
	}
	return e
}

// NameStatus projects a diff to path -> status, dropping SAME entries.
func NameStatus(d Diff) map[string]Status {
	out := map[string]Status{}
	for p, e := range d {
		if e.Status != Same {
			out[p] = e.Status
		}
	}
	return out
}

// SortedPaths returns d's keys, sorted, for deterministic printing.
func SortedPaths(d Diff) []string {
	out := make([]string, 0, len(d))
	for p := range d {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// _ silences "unused" for present(), kept for readability at call sites
// that want explicit presence checks rather than comparing to "".
var _ = present

// ChangedFilesCommitWouldOverwrite intersects the paths changed between
// headToWorkingCopy and headToTarget (both two-way diffs from the same
// HEAD), excluding SAME — the guard checkout/merge use to refuse to
// clobber unsaved work.
func ChangedFilesCommitWouldOverwrite(headToWorkingCopy, headToTarget Diff) []string {
	changedInWorkingCopy := NameStatus(headToWorkingCopy)
	changedInTarget := NameStatus(headToTarget)

	var out []string
	for p := range changedInWorkingCopy {
		if _, ok := changedInTarget[p]; ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// AddedOrModifiedFiles returns the paths that are ADD or MODIFY in
// headToWorkingCopy (working-copy changes relative to HEAD, excluding
// deletions).
func AddedOrModifiedFiles(headToWorkingCopy Diff) []string {
	var out []string
	for p, e := range headToWorkingCopy {
		if e.Status == Add || e.Status == Modify {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
