package watcher

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
)

// discoverWatchDirs builds the fixed watched-directory set. The root is
// always first; with recursive enabled, every subdirectory found by a single
// walk at construction time is appended in sorted path order so the scan
// order is deterministic. The walk runs exactly once: directories created
// after construction are never discovered. That is a stated limitation of
// the design, not something cycles patch up later.
func discoverWatchDirs(root string, recursive bool) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, pwerrors.DiscoveryError(root, err)
	}

	dirs := []string{absRoot}
	if !recursive {
		return dirs, nil
	}

	conf := &fastwalk.Config{
		Follow: false, // symlink cycles are out of scope
	}

	var mu sync.Mutex
	var subs []string
	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree at discovery time is skipped, not fatal.
			return nil
		}
		if path == absRoot || !d.IsDir() {
			return nil
		}
		mu.Lock()
		subs = append(subs, path)
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, pwerrors.DiscoveryError(root, walkErr)
	}

	// fastwalk visits in parallel; sort for a stable scan order.
	sort.Strings(subs)
	return append(dirs, subs...), nil
}
