package tree

import (
	"encoding/json"
	"testing"

	"canopy/treelog/internal/search"
)

func TestFromDFS_SingleRoot(t *testing.T) {
	res := &search.DFSResult{TreeState: &search.DFSNode{ID: 42, Children: []*search.DFSNode{}}}

	log, err := FromDFS(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if log.Len() != 1 {
		t.Fatalf("log length = %d, want 1", log.Len())
	}

	snap, _ := log.At(0)
	if snap.Len() != 1 || snap.EdgeCount() != 0 {
		t.Fatalf("snapshot = %d nodes, %d edges, want 1 and 0", snap.Len(), snap.EdgeCount())
	}
	root, _ := snap.Node(snap.Root())
	if root.SelectedEdge != nil {
		t.Error("childless root must have no selected edge")
	}

	// And on the wire it shows up as an explicit null.
	encoded, err := Encode(log)
	if err != nil {
		t.Fatal(err)
	}
	var wire struct {
		Logs []struct {
			Nodes map[string]map[string]any `json:"nodes"`
		} `json:"logs"`
	}
	if err := json.Unmarshal(encoded, &wire); err != nil {
		t.Fatal(err)
	}
	node := wire.Logs[0].Nodes["0"]
	if v, ok := node["selected_edge"]; !ok || v != nil {
		t.Errorf("selected_edge = %v (present %v), want explicit null", v, ok)
	}
}

func TestFromDFS_DeepPath(t *testing.T) {
	// A DFS that found one deep branch and a few dead ends.
	res := &search.DFSResult{TreeState: &search.DFSNode{
		ID: 0,
		Children: []*search.DFSNode{
			{ID: 1, Action: "a", Reward: 0.1},
			{ID: 2, Action: "b", Reward: 0.6, Children: []*search.DFSNode{
				{ID: 3, Action: "c", Reward: 0.7},
			}},
		},
	}}

	log, err := FromDFS(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := log.At(0)
	if snap.Len() != 4 || snap.EdgeCount() != 3 {
		t.Fatalf("snapshot = %d nodes, %d edges", snap.Len(), snap.EdgeCount())
	}

	root, _ := snap.Node(snap.Root())
	e, _ := snap.Edge(*root.SelectedEdge)
	if e.Data["action"] != "b" {
		t.Errorf("root selects action %v, want b", e.Data["action"])
	}
}
