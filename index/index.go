// Package index implements the staging area: a persistent mapping from
// (path, stage) to blob hash, with conflict stages 1 (base), 2 (receiver)
// and 3 (giver).
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vcs/objstore"
)

// Stage identifies a path's conflict disposition.
type Stage int

const (
	StageNone     Stage = 0
	StageBase     Stage = 1
	StageReceiver Stage = 2
	StageGiver    Stage = 3
)

type key struct {
	path  string
	stage Stage
}

// Index is the in-memory, persisted staging area.
type Index struct {
	path  string
	store *objstore.Store
	entries map[key]string // hash
}

// Load reads the index file at path, returning an empty Index if absent.
func Load(path string, store *objstore.Store) (*Index, error) {
	idx := &Index{path: path, store: store, entries: map[key]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("index: corrupt line %q", line)
		}
		stageNum, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("index: corrupt stage in line %q", line)
		}
		idx.entries[key{fields[0], Stage(stageNum)}] = fields[2]
	}
	return idx, nil
}

// Save persists the index back to its file in "<path> <stage> <hash>\n" lines.
func (idx *Index) Save() error {
	keys := make([]key, 0, len(idx.entries))
	for k := range idx.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].path != keys[j].path {
			return keys[i].path < keys[j].path
		}
		return keys[i].stage < keys[j].stage
	})

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %d %s\n", k.path, k.stage, idx.entries[k])
	}

	if err := os.MkdirAll(filepath.Dir(idx.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(idx.path, []byte(b.String()), 0o644)
}

// HasFile reports whether (path, stage) is present.
func (idx *Index) HasFile(path string, stage Stage) bool {
	_, ok := idx.entries[key{path, stage}]
	return ok
}

// Get returns the hash at (path, stage).
func (idx *Index) Get(path string, stage Stage) (string, bool) {
	h, ok := idx.entries[key{path, stage}]
	return h, ok
}

// TOC projects the index to its stage-0 path -> hash view.
func (idx *Index) TOC() objstore.TOC {
	out := objstore.TOC{}
	for k, h := range idx.entries {
		if k.stage == StageNone {
			out[k.path] = h
		}
	}
	return out
}

// WorkingCopyTOC recomputes the hash of the on-disk copy of every stage-0
// indexed path (without staging it), rooted at workDir.
func (idx *Index) WorkingCopyTOC(workDir string) (objstore.TOC, error) {
	out := objstore.TOC{}
	for k := range idx.entries {
		if k.stage != StageNone {
			continue
		}
		data, err := os.ReadFile(filepath.Join(workDir, k.path))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		out[k.path] = objstore.Hash(data)
	}
	return out, nil
}

// ConflictedPaths returns every path with a stage-2/3 entry.
func (idx *Index) ConflictedPaths() []string {
	seen := map[string]bool{}
	for k := range idx.entries {
		if k.stage == StageReceiver || k.stage == StageGiver {
			seen[k.path] = true
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// MatchingFiles returns every stage-0 path with pathspec as a path-segment
// prefix (a pathspec of "." matches everything).
func (idx *Index) MatchingFiles(pathspec string) []string {
	clean := filepath.ToSlash(filepath.Clean(pathspec))
	var out []string
	for k := range idx.entries {
		if k.stage != StageNone {
			continue
		}
		if clean == "." || k.path == clean || strings.HasPrefix(k.path, clean+"/") {
			out = append(out, k.path)
		}
	}
	sort.Strings(out)
	return out
}

// WriteRm deletes every stage for path.
func (idx *Index) WriteRm(path string) {
	for s := StageNone; s <= StageGiver; s++ {
		delete(idx.entries, key{path, s})
	}
}

// WriteNonConflict stores content as the sole, non-conflicting entry for path.
func (idx *Index) WriteNonConflict(path string, content []byte) (string, error) {
	idx.WriteRm(path)
	hash, err := idx.store.Write(content)
	if err != nil {
		return "", err
	}
	idx.entries[key{path, StageNone}] = hash
	return hash, nil
}

// WriteConflict records a conflicted path at receiver/giver (and base, if given).
func (idx *Index) WriteConflict(path, receiverHash, giverHash string, baseHash *string) {
	delete(idx.entries, key{path, StageNone})
	idx.entries[key{path, StageReceiver}] = receiverHash
	idx.entries[key{path, StageGiver}] = giverHash
	if baseHash != nil {
		idx.entries[key{path, StageBase}] = *baseHash
	} else {
		delete(idx.entries, key{path, StageBase})
	}
}

// SetTOC replaces all stage-0 content with toc, clearing any conflict stages.
func (idx *Index) SetTOC(toc objstore.TOC) {
	idx.entries = map[key]string{}
	for path, hash := range toc {
		idx.entries[key{path, StageNone}] = hash
	}
}

// Set directly assigns (path, stage) -> hash, used when rebuilding the
// index from a merge diff where the caller already knows the stage.
func (idx *Index) Set(path string, stage Stage, hash string) {
	idx.entries[key{path, stage}] = hash
}
