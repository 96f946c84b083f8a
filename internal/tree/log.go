package tree

import "fmt"

// Log is an immutable ordered sequence of Snapshots, one per algorithm step.
// For MCTS with recorded history the index is the search iteration; beam
// search and DFS produce single-entry logs.
type Log struct {
	snapshots []*Snapshot
}

// NewLog builds a Log owning the given snapshots.
func NewLog(snapshots []*Snapshot) *Log {
	owned := make([]*Snapshot, len(snapshots))
	copy(owned, snapshots)
	return &Log{snapshots: owned}
}

// Len returns the number of snapshots.
func (l *Log) Len() int {
	return len(l.snapshots)
}

// At returns the snapshot at step i.
func (l *Log) At(i int) (*Snapshot, error) {
	if i < 0 || i >= len(l.snapshots) {
		return nil, fmt.Errorf("snapshot %d of %d: %w", i, len(l.snapshots), ErrNotFound)
	}
	return l.snapshots[i], nil
}

// Snapshots returns the snapshots in step order. The slice is a fresh copy,
// so ranging over it is always a full traversal from step 0.
func (l *Log) Snapshots() []*Snapshot {
	out := make([]*Snapshot, len(l.snapshots))
	copy(out, l.snapshots)
	return out
}
