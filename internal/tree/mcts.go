package tree

import "canopy/treelog/internal/search"

// MCTSConfig carries the conversion factories for FromMCTS. A nil config or
// nil field selects the documented defaults; there is no other fallback.
type MCTSConfig struct {
	// NodeData converts a node's state into display attributes. Default:
	// the shared state conversion (stateData).
	NodeData func(*search.MCTSNode) (NodeData, error)
	// EdgeData converts the child node a link leads to into edge attributes.
	// Default: Q and reward when the node has them, merged with the
	// finalized reward details if recorded, otherwise the provisional ones.
	EdgeData func(*search.MCTSNode) EdgeData
}

func defaultMCTSNodeData(n *search.MCTSNode) (NodeData, error) {
	return stateData(n.State)
}

func defaultMCTSEdgeData(n *search.MCTSNode) EdgeData {
	d := EdgeData{}
	if n.Q != nil {
		d["Q"] = *n.Q
	}
	if n.Reward != nil {
		d["reward"] = *n.Reward
	}
	details := n.RewardDetails
	if details == nil {
		details = n.FastRewardDetails
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}

// FromMCTS converts a completed MCTS run into a Log. With recorded history
// there is one snapshot per iteration; otherwise a single snapshot of the
// final tree. A node with a nil children slice was never expanded and is
// treated as a leaf. Within each snapshot, trace pairs select the edges the
// iteration actually walked; every other non-leaf selects its highest-Q
// outgoing edge.
func FromMCTS(res *search.MCTSResult, cfg *MCTSConfig) (*Log, error) {
	if res == nil {
		return nil, errNoTree("mcts")
	}
	if cfg == nil {
		cfg = &MCTSConfig{}
	}
	nodeData := cfg.NodeData
	if nodeData == nil {
		nodeData = defaultMCTSNodeData
	}
	edgeData := cfg.EdgeData
	if edgeData == nil {
		edgeData = defaultMCTSEdgeData
	}

	trees := res.TreeStateAfterEachIter
	if len(trees) == 0 {
		if res.TreeState == nil {
			return nil, errNoTree("mcts")
		}
		trees = []*search.MCTSNode{res.TreeState}
	}

	snapshots := make([]*Snapshot, 0, len(trees))
	for step, root := range trees {
		if root == nil {
			return nil, errNoTree("mcts")
		}
		var trace []int
		if step < len(res.TraceInEachIter) {
			trace = res.TraceInEachIter[step]
		}
		snap, err := snapshotTree(
			root,
			func(n *search.MCTSNode) []*search.MCTSNode { return n.Children },
			func(n *search.MCTSNode) int { return n.ID },
			nodeData,
			edgeData,
			trace,
			"Q",
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	return NewLog(snapshots), nil
}
