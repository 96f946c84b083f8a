package tree

import "canopy/treelog/internal/search"

// BeamConfig carries the conversion factories for FromBeamSearch. Nil config
// or fields select the defaults.
type BeamConfig struct {
	NodeData func(*search.BeamNode) (NodeData, error)
	// EdgeData defaults to the child's reward and the action that produced it.
	EdgeData func(*search.BeamNode) EdgeData
}

func defaultBeamNodeData(n *search.BeamNode) (NodeData, error) {
	return stateData(n.State)
}

func defaultBeamEdgeData(n *search.BeamNode) EdgeData {
	return EdgeData{"reward": n.Reward, "action": n.Action}
}

// FromBeamSearch converts a completed beam-search run into a single-snapshot
// Log. Each non-leaf node selects its highest-reward outgoing edge.
func FromBeamSearch(res *search.BeamResult, cfg *BeamConfig) (*Log, error) {
	if res == nil {
		return nil, errNoTree("beam search")
	}
	if cfg == nil {
		cfg = &BeamConfig{}
	}
	nodeData := cfg.NodeData
	if nodeData == nil {
		nodeData = defaultBeamNodeData
	}
	edgeData := cfg.EdgeData
	if edgeData == nil {
		edgeData = defaultBeamEdgeData
	}

	if res.Tree == nil {
		return nil, errNoTree("beam search")
	}

	snap, err := snapshotTree(
		res.Tree,
		func(n *search.BeamNode) []*search.BeamNode { return n.Children },
		func(n *search.BeamNode) int { return n.ID },
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
