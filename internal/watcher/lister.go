package watcher

import (
	"context"
	"os"
	"time"
)

// Entry is one file observed in a watched directory.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// DirLister enumerates the files of a single directory. An error return is
// fatal for the directory (deleted, permission denied); per-file races must
// be handled by the implementation, not surfaced as errors.
type DirLister interface {
	List(ctx context.Context, dir string) ([]Entry, error)
}

// OSLister lists directories via the local filesystem.
type OSLister struct{}

// List returns the regular files of dir. Subdirectories are not included;
// recursive watching tracks each subdirectory as its own watched directory.
// A file that vanishes between the directory read and the stat is skipped,
// which the scan engine observes as an ordinary removal.
func (OSLister) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}
