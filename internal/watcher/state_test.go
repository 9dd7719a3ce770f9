package watcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateStore_Basics(t *testing.T) {
	s := NewStateStore([]string{"/a", "/b"})

	_, ok := s.Locate("/a", "x.txt")
	require.False(t, ok)

	s.Insert(&FileState{Dir: "/a", Name: "x.txt", Size: 10, ModTime: 1, gen: 1})
	s.Insert(&FileState{Dir: "/b", Name: "y.txt", Size: 20, ModTime: 2, gen: 1})
	require.Equal(t, 2, s.Len())

	st, ok := s.Locate("/a", "x.txt")
	require.True(t, ok)
	require.Equal(t, int64(10), st.Size)

	// In-place mutation through the stable pointer, no reinsert needed.
	st.Size = 15
	st.gen = 2
	again, ok := s.Locate("/a", "x.txt")
	require.True(t, ok)
	require.Equal(t, int64(15), again.Size)

	s.Remove("/b", "y.txt")
	require.Equal(t, 1, s.Len())
	_, ok = s.Locate("/b", "y.txt")
	require.False(t, ok)

	// Removing an absent record is a no-op.
	s.Remove("/b", "y.txt")
	require.Equal(t, 1, s.Len())
}

func TestStateStore_SweepStale(t *testing.T) {
	s := NewStateStore([]string{"/a"})
	s.Insert(&FileState{Dir: "/a", Name: "fresh.txt", gen: 5})
	s.Insert(&FileState{Dir: "/a", Name: "stale.txt", gen: 4})

	changes := s.sweepStale(5, nil)

	require.Equal(t, ChangeList{{Type: ChangeRemoved, Directory: "/a", File: "stale.txt"}}, changes)
	require.Equal(t, 1, s.Len())
	_, ok := s.Locate("/a", "stale.txt")
	require.False(t, ok)
	_, ok = s.Locate("/a", "fresh.txt")
	require.True(t, ok)
}
