package tree

import (
	"fmt"
	"math"
)

// walked is the accumulator a tree walk threads through its stack: nodes and
// edges in assignment order, plus the mapping from algorithm node ids to
// snapshot-local ids, needed later to resolve traces.
type walked struct {
	nodes []*Node
	edges []*Edge
	ids   map[int]NodeID
}

// walkTree visits an algorithm result tree in pre-order using an explicit
// stack, assigning snapshot NodeIDs in visitation order and EdgeIDs in
// traversal order. Children are visited in the order the algorithm recorded
// them. The walk itself carries no state beyond the accumulator, so the same
// input always produces the same ids.
func walkTree[N any](
	root N,
	children func(N) []N,
	algoID func(N) int,
	nodeData func(N) (NodeData, error),
	edgeData func(N) EdgeData,
) (*walked, error) {
	w := &walked{ids: map[int]NodeID{}}

	type frame struct {
		node   N
		parent NodeID
		isRoot bool
	}
	stack := []frame{{node: root, isRoot: true}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := NodeID(len(w.nodes))
		if !f.isRoot {
			w.edges = append(w.edges, &Edge{
				ID:     EdgeID(len(w.edges)),
				Source: f.parent,
				Target: id,
				Data:   edgeData(f.node),
			})
		}

		data, err := nodeData(f.node)
		if err != nil {
			return nil, err
		}
		w.nodes = append(w.nodes, &Node{ID: id, Data: data})
		w.ids[algoID(f.node)] = id

		kids := children(f.node)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], parent: id})
		}
	}

	return w, nil
}

// highlight marks each node's selected edge, once per snapshot, after the
// walk. Trace pairs win: for consecutive trace entries the connecting edge is
// selected on the source node. Every remaining non-leaf gets the outgoing
// edge with the largest value in the named data field; an edge without the
// field counts as -Inf, and ties go to the lowest edge id. Leaves are left
// unset.
func highlight(s *Snapshot, ids map[int]NodeID, trace []int, field string) error {
	for i := 0; i+1 < len(trace); i++ {
		src, okSrc := ids[trace[i]]
		dst, okDst := ids[trace[i+1]]
		if !okSrc || !okDst {
			continue
		}
		out, err := s.OutEdges(src)
		if err != nil {
			return err
		}
		for _, e := range out {
			if e.Target == dst {
				node, err := s.Node(src)
				if err != nil {
					return err
				}
				eid := e.ID
				node.SelectedEdge = &eid
				break
			}
		}
	}

	for _, id := range s.NodeIDs() {
		node, err := s.Node(id)
		if err != nil {
			return err
		}
		if node.SelectedEdge != nil {
			continue
		}
		out, err := s.OutEdges(id)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			continue
		}
		best := out[0]
		bestVal := math.Inf(-1)
		if v, ok := numericField(best.Data, field); ok {
			bestVal = v
		}
		for _, e := range out[1:] {
			val := math.Inf(-1)
			if v, ok := numericField(e.Data, field); ok {
				val = v
			}
			if val > bestVal {
				best, bestVal = e, val
			}
		}
		eid := best.ID
		node.SelectedEdge = &eid
	}

	return nil
}

// snapshotTree runs a full walk-build-highlight pass for one tree state.
func snapshotTree[N any](
	root N,
	children func(N) []N,
	algoID func(N) int,
	nodeData func(N) (NodeData, error),
	edgeData func(N) EdgeData,
	trace []int,
	field string,
) (*Snapshot, error) {
	w, err := walkTree(root, children, algoID, nodeData, edgeData)
	if err != nil {
		return nil, err
	}
	snap, err := NewSnapshot(w.nodes, w.edges)
	if err != nil {
		return nil, err
	}
	if err := highlight(snap, w.ids, trace, field); err != nil {
		return nil, err
	}
	return snap, nil
}

// errNoTree reports a result that carries no tree at all, which no adapter
// can snapshot.
func errNoTree(algo string) error {
	return fmt.Errorf("%s result has no tree state", algo)
}
