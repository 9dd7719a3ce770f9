package watcher

// ChangeType classifies a single detected filesystem change.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeChanged ChangeType = "changed"
	ChangeRemoved ChangeType = "removed"
)

// Change identifies one (directory, filename) pair affected in a poll cycle.
type Change struct {
	Type      ChangeType `json:"type"`
	Directory string     `json:"directory"`
	File      string     `json:"file"`
}

// ChangeList is the ordered result of one poll cycle. A cycle with no
// changes yields a nil ChangeList; Empty never allocates backing storage.
type ChangeList []Change

// Empty reports whether the cycle produced no changes.
func (cl ChangeList) Empty() bool {
	return len(cl) == 0
}

// Counts returns per-type totals, mainly for logging and metrics.
func (cl ChangeList) Counts() (added, changed, removed int) {
	for _, c := range cl {
		switch c.Type {
		case ChangeAdded:
			added++
		case ChangeChanged:
			changed++
		case ChangeRemoved:
			removed++
		}
	}
	return added, changed, removed
}
