package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by node/edge lookups with an unknown id and by
	// Log.At with an out-of-range index.
	ErrNotFound = errors.New("not found")

	// ErrRootHasNoParent is returned by Parent when called on the root.
	ErrRootHasNoParent = errors.New("root has no parent")

	// ErrUnsupportedState is returned when the default node-data conversion
	// has no way to flatten a state value and no custom factory was given.
	ErrUnsupportedState = errors.New("unsupported state type: provide a node data factory to convert the state to a map")
)

// StructuralError reports a node/edge collection that does not form a tree.
// Construction is all-or-nothing: when this is returned no Snapshot exists.
type StructuralError struct {
	Reason string
	Nodes  int
	Edges  int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed tree (%d nodes, %d edges): %s", e.Nodes, e.Edges, e.Reason)
}
