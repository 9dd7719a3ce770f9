package watcher

// FileState is the recorded observation of one file, unique per
// (directory, filename). The generation field is stamped every cycle the
// file is observed; a stale generation after a full sweep means the file
// disappeared. The counter is 64 bits wide so wraparound collisions cannot
// produce false removals in any realistic deployment.
type FileState struct {
	Dir     string
	Name    string
	Size    int64
	ModTime int64 // unix nanoseconds of last write
	gen     uint64
}

// StateStore maps (directory, filename) to *FileState. The two-level layout
// keys by directory first, so the staleness sweep of a cycle walks one inner
// map per watched directory. Records are mutated in place through their
// pointer; a cycle that observes no changes performs no heap allocation.
//
// The store is not synchronized: only the scheduling goroutine touches it,
// which the non-overlapping scheduler guarantees by construction.
type StateStore struct {
	dirs  map[string]map[string]*FileState
	count int
}

// NewStateStore creates a store with one pre-allocated bucket per watched
// directory. The watched set is fixed after construction, so buckets are
// never created during a cycle.
func NewStateStore(watchDirs []string) *StateStore {
	dirs := make(map[string]map[string]*FileState, len(watchDirs))
	for _, d := range watchDirs {
		dirs[d] = make(map[string]*FileState)
	}
	return &StateStore{dirs: dirs}
}

// Locate returns the record for (dir, name) if present.
func (s *StateStore) Locate(dir, name string) (*FileState, bool) {
	st, ok := s.dirs[dir][name]
	return st, ok
}

// Insert adds a record. At most one record per (dir, name) may exist; the
// caller checks Locate first.
func (s *StateStore) Insert(st *FileState) {
	s.dirs[st.Dir][st.Name] = st
	s.count++
}

// Remove deletes the record for (dir, name) if present.
func (s *StateStore) Remove(dir, name string) {
	if _, ok := s.dirs[dir][name]; ok {
		delete(s.dirs[dir], name)
		s.count--
	}
}

// Len returns the number of tracked files.
func (s *StateStore) Len() int {
	return s.count
}

// sweepStale deletes every record whose generation does not match gen,
// appending a Removed record for each to changes. Called once per cycle
// after all directories have been scanned. Taking and returning the change
// list keeps the quiet path free of closure allocations.
func (s *StateStore) sweepStale(gen uint64, changes ChangeList) ChangeList {
	for dir, files := range s.dirs {
		for name, st := range files {
			if st.gen != gen {
				delete(files, name)
				s.count--
				changes = append(changes, Change{Type: ChangeRemoved, Directory: dir, File: name})
			}
		}
	}
	return changes
}
