package tree

import (
	"bytes"
	"errors"
	"testing"

	"canopy/treelog/internal/search"
)

func fp(v float64) *float64 { return &v }

// mctsIterations builds trees of 1, 4 and 7 nodes, as recorded after three
// search iterations.
func mctsIterations() *search.MCTSResult {
	iter1 := &search.MCTSNode{ID: 100}

	iter2 := &search.MCTSNode{ID: 100, Children: []*search.MCTSNode{
		{ID: 101, Q: fp(0.2)},
		{ID: 102, Q: fp(0.8)},
		{ID: 103, Q: fp(0.5)},
	}}

	iter3 := &search.MCTSNode{ID: 100, Children: []*search.MCTSNode{
		{ID: 101, Q: fp(0.2)},
		{ID: 102, Q: fp(0.8), Children: []*search.MCTSNode{
			{ID: 104, Q: fp(0.1)},
			{ID: 105, Q: fp(0.9)},
			{ID: 106, Q: fp(0.4)},
		}},
		{ID: 103, Q: fp(0.5)},
	}}

	return &search.MCTSResult{
		TreeState:              iter3,
		TreeStateAfterEachIter: []*search.MCTSNode{iter1, iter2, iter3},
	}
}

func TestFromMCTS_SnapshotPerIteration(t *testing.T) {
	log, err := FromMCTS(mctsIterations(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if log.Len() != 3 {
		t.Fatalf("log length = %d, want 3", log.Len())
	}

	third, err := log.At(2)
	if err != nil {
		t.Fatal(err)
	}
	if third.Len() != 7 || third.EdgeCount() != 6 {
		t.Errorf("third snapshot = %d nodes, %d edges, want 7 and 6", third.Len(), third.EdgeCount())
	}
}

func TestFromMCTS_FinalTreeOnly(t *testing.T) {
	res := mctsIterations()
	res.TreeStateAfterEachIter = nil

	log, err := FromMCTS(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if log.Len() != 1 {
		t.Fatalf("log length = %d, want 1", log.Len())
	}
}

func TestFromMCTS_IDsAssignedInVisitOrder(t *testing.T) {
	log, err := FromMCTS(mctsIterations(), nil)
	if err != nil {
		t.Fatal(err)
	}
	third, _ := log.At(2)

	// Pre-order over algorithm ids 100,101,102,104,105,106,103 gives
	// snapshot ids 0..6 regardless of the algorithm's own numbering.
	if third.Root() != 0 {
		t.Errorf("root id = %d, want 0", third.Root())
	}
	kids, err := third.Children(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(kids) != 3 || kids[0] != 3 || kids[2] != 5 {
		t.Errorf("children of node 2 = %v, want [3 4 5]", kids)
	}
}

func TestFromMCTS_SelectsHighestQ(t *testing.T) {
	log, err := FromMCTS(mctsIterations(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := log.At(1)

	root, err := second.Node(second.Root())
	if err != nil {
		t.Fatal(err)
	}
	if root.SelectedEdge == nil {
		t.Fatal("root has out edges, selected edge must be set")
	}
	e, err := second.Edge(*root.SelectedEdge)
	if err != nil {
		t.Fatal(err)
	}
	if q, _ := numericField(e.Data, "Q"); q != 0.8 {
		t.Errorf("selected edge Q = %v, want 0.8", q)
	}
}

func TestFromMCTS_TraceOverridesQ(t *testing.T) {
	res := mctsIterations()
	// The recorded iteration walked root -> node 101 even though 102 has the
	// higher Q.
	res.TraceInEachIter = [][]int{{100}, {100, 101}, {100, 102, 105}}

	log, err := FromMCTS(res, nil)
	if err != nil {
		t.Fatal(err)
	}

	second, _ := log.At(1)
	root, _ := second.Node(second.Root())
	if root.SelectedEdge == nil {
		t.Fatal("selected edge not set")
	}
	e, _ := second.Edge(*root.SelectedEdge)
	if q, _ := numericField(e.Data, "Q"); q != 0.2 {
		t.Errorf("trace should select the Q=0.2 edge, got Q=%v", q)
	}

	// Later trace pairs select edges deeper in the tree.
	third, _ := log.At(2)
	node2, _ := third.Node(2)
	if node2.SelectedEdge == nil {
		t.Fatal("trace-covered node should have selected edge")
	}
}

func TestFromMCTS_MissingQTreatedAsLowest(t *testing.T) {
	root := &search.MCTSNode{ID: 0, Children: []*search.MCTSNode{
		{ID: 1},            // no Q recorded
		{ID: 2, Q: fp(-3)}, // low but present
	}}
	log, err := FromMCTS(&search.MCTSResult{TreeState: root}, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	n, _ := snap.Node(snap.Root())
	e, _ := snap.Edge(*n.SelectedEdge)
	if e.Target != 2 {
		t.Errorf("selected edge targets node %d, want the Q=-3 child", e.Target)
	}
}

func TestFromMCTS_AllMissingQTiesToFirstEdge(t *testing.T) {
	root := &search.MCTSNode{ID: 0, Children: []*search.MCTSNode{
		{ID: 1},
		{ID: 2},
	}}
	log, err := FromMCTS(&search.MCTSResult{TreeState: root}, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	n, _ := snap.Node(snap.Root())
	if n.SelectedEdge == nil || *n.SelectedEdge != 0 {
		t.Errorf("selected edge = %v, want edge 0", n.SelectedEdge)
	}
}

func TestFromMCTS_UnexpandedNodeIsLeaf(t *testing.T) {
	// Children nil: the search never expanded this node.
	root := &search.MCTSNode{ID: 0, Children: []*search.MCTSNode{
		{ID: 1, Q: fp(1), Children: nil},
	}}
	log, err := FromMCTS(&search.MCTSResult{TreeState: root}, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	leaf, _ := snap.Node(1)
	if leaf.SelectedEdge != nil {
		t.Error("unexpanded leaf must not get a selected edge")
	}
}

func TestFromMCTS_RewardDetailsPreferred(t *testing.T) {
	root := &search.MCTSNode{ID: 0, Children: []*search.MCTSNode{
		{
			ID:                1,
			Q:                 fp(0.5),
			Reward:            fp(0.25),
			RewardDetails:     map[string]any{"intuition": 0.7},
			FastRewardDetails: map[string]any{"intuition": 0.1},
		},
	}}
	log, err := FromMCTS(&search.MCTSResult{TreeState: root}, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	e, _ := snap.Edge(0)
	if e.Data["intuition"] != 0.7 {
		t.Errorf("edge data intuition = %v, want the finalized 0.7", e.Data["intuition"])
	}
	if e.Data["Q"] != 0.5 || e.Data["reward"] != 0.25 {
		t.Errorf("edge data = %v, want Q and reward included", e.Data)
	}
}

func TestFromMCTS_CustomFactories(t *testing.T) {
	root := &search.MCTSNode{ID: 0, State: struct{ hidden int }{1}, Children: []*search.MCTSNode{
		{ID: 1, State: struct{ hidden int }{2}},
	}}

	// Opaque states fail without a factory.
	if _, err := FromMCTS(&search.MCTSResult{TreeState: root}, nil); !errors.Is(err, ErrUnsupportedState) {
		t.Fatalf("expected ErrUnsupportedState, got %v", err)
	}

	cfg := &MCTSConfig{
		NodeData: func(n *search.MCTSNode) (NodeData, error) {
			return NodeData{"label": n.ID}, nil
		},
		EdgeData: func(n *search.MCTSNode) EdgeData {
			return EdgeData{"Q": 1.0}
		},
	}
	log, err := FromMCTS(&search.MCTSResult{TreeState: root}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	n, _ := snap.Node(0)
	if n.Data["label"] != 0 {
		t.Errorf("custom node data not applied: %v", n.Data)
	}
}

func TestFromMCTS_Idempotent(t *testing.T) {
	res := mctsIterations()
	res.TraceInEachIter = [][]int{{100}, {100, 102}, {100, 102, 105}}

	first, err := FromMCTS(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FromMCTS(res, nil)
	if err != nil {
		t.Fatal(err)
	}

	a, err := Encode(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("converting the same result twice produced different logs")
	}
}

func TestFromMCTS_NoTree(t *testing.T) {
	if _, err := FromMCTS(&search.MCTSResult{}, nil); err == nil {
		t.Fatal("expected error for result without tree state")
	}
	if _, err := FromMCTS(nil, nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}
