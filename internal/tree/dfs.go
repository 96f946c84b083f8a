package tree

import "canopy/treelog/internal/search"

// DFSConfig carries the conversion factories for FromDFS. Nil config or
// fields select the defaults.
type DFSConfig struct {
	NodeData func(*search.DFSNode) (NodeData, error)
	// EdgeData defaults to the child's reward and the action that produced it.
	EdgeData func(*search.DFSNode) EdgeData
}

func defaultDFSNodeData(n *search.DFSNode) (NodeData, error) {
	return stateData(n.State)
}

func defaultDFSEdgeData(n *search.DFSNode) EdgeData {
	return EdgeData{"reward": n.Reward, "action": n.Action}
}

// FromDFS converts a completed depth-first search run into a single-snapshot
// Log. Each non-leaf node selects its highest-reward outgoing edge.
func FromDFS(res *search.DFSResult, cfg *DFSConfig) (*Log, error) {
	if res == nil {
		return nil, errNoTree("dfs")
	}
	if cfg == nil {
		cfg = &DFSConfig{}
	}
	nodeData := cfg.NodeData
	if nodeData == nil {
		nodeData = defaultDFSNodeData
	}
	edgeData := cfg.EdgeData
	if edgeData == nil {
		edgeData = defaultDFSEdgeData
	}

	if res.TreeState == nil {
		return nil, errNoTree("dfs")
	}

	snap, err := snapshotTree(
		res.TreeState,
		func(n *search.DFSNode) []*search.DFSNode { return n.Children },
		func(n *search.DFSNode) int { return n.ID },
		nodeData,
		edgeData,
		nil,
		"reward",
	)
	if err != nil {
		return nil, err
	}

	return NewLog([]*Snapshot{snap}), nil
}
