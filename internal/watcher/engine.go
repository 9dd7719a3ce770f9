package watcher

import (
	"context"

	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
)

// ScanEngine executes poll cycles: it enumerates every watched directory,
// updates the state store, and produces the cycle's change list using a
// generation-counter staleness sweep.
type ScanEngine struct {
	dirs   []string
	store  *StateStore
	lister DirLister
	gen    uint64
}

// NewScanEngine creates an engine over a fixed watched-directory set.
func NewScanEngine(dirs []string, lister DirLister) *ScanEngine {
	return &ScanEngine{
		dirs:   dirs,
		store:  NewStateStore(dirs),
		lister: lister,
	}
}

// RunCycle performs one complete poll cycle and returns the changes it
// detected, nil when nothing changed.
//
// A fatal enumeration error aborts the cycle: directories scanned earlier in
// the same cycle keep their state updates (no rollback), and the changes
// collected up to the failure are returned alongside the error so callers
// can still deliver them. Records of the failed and unscanned directories
// are simply not swept this cycle, so nothing is spuriously removed.
func (e *ScanEngine) RunCycle(ctx context.Context) (ChangeList, error) {
	e.gen++

	// Stays nil on the no-change path; the backing array is only allocated
	// by the first append.
	var changes ChangeList

	for _, dir := range e.dirs {
		entries, err := e.lister.List(ctx, dir)
		if err != nil {
			return changes, pwerrors.DirectoryUnreadable(dir, err)
		}
		for i := range entries {
			ent := &entries[i]
			st, ok := e.store.Locate(dir, ent.Name)
			if !ok {
				e.store.Insert(&FileState{
					Dir:     dir,
					Name:    ent.Name,
					Size:    ent.Size,
					ModTime: ent.ModTime.UnixNano(),
					gen:     e.gen,
				})
				changes = append(changes, Change{Type: ChangeAdded, Directory: dir, File: ent.Name})
				continue
			}
			if st.Size != ent.Size || st.ModTime != ent.ModTime.UnixNano() {
				st.Size = ent.Size
				st.ModTime = ent.ModTime.UnixNano()
				changes = append(changes, Change{Type: ChangeChanged, Directory: dir, File: ent.Name})
			}
			st.gen = e.gen
		}
	}

	// Anything not re-stamped this cycle is gone. A rename therefore always
	// surfaces as Removed(old) plus Added(new), never as a single Changed.
	changes = e.store.sweepStale(e.gen, changes)

	return changes, nil
}

// Generation returns the current cycle counter.
func (e *ScanEngine) Generation() uint64 {
	return e.gen
}

// TrackedFiles returns the number of files currently recorded.
func (e *ScanEngine) TrackedFiles() int {
	return e.store.Len()
}

// WatchedDirs returns the fixed watched-directory set in scan order.
func (e *ScanEngine) WatchedDirs() []string {
	return e.dirs
}
