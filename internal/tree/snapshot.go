// Package tree captures point-in-time snapshots of a search tree and
// serializes them for the web visualizer. A Snapshot is one tree state, a Log
// is the ordered sequence of snapshots for a whole run. Adapters in this
// package build Logs from recorded MCTS, beam-search and DFS results.
package tree

import (
	"fmt"
	"sort"
)

// NodeID identifies a node within one Snapshot. Ids restart at 0 for every
// snapshot in a Log; they are not unique across snapshots.
type NodeID int

// EdgeID identifies an edge within one Snapshot.
type EdgeID int

// NodeData holds display attributes derived from the algorithm's node state.
type NodeData map[string]any

// EdgeData holds display attributes for one parent→child link.
type EdgeData map[string]any

// Node is one node of a Snapshot. SelectedEdge, when set, is the outgoing
// edge the visualizer highlights as the path taken from this node.
type Node struct {
	ID           NodeID   `json:"id"`
	Data         NodeData `json:"data"`
	SelectedEdge *EdgeID  `json:"selected_edge"`
}

// Edge is one directed parent→child link of a Snapshot.
type Edge struct {
	ID     EdgeID   `json:"id"`
	Source NodeID   `json:"source"`
	Target NodeID   `json:"target"`
	Data   EdgeData `json:"data"`
}

// Snapshot is an immutable capture of a search tree. It owns its nodes and
// edges and keeps derived parent/children indices, which are recomputed on
// decode and never serialized.
type Snapshot struct {
	nodes    map[NodeID]*Node
	edges    map[EdgeID]*Edge
	parent   map[NodeID]NodeID
	children map[NodeID][]NodeID
	root     NodeID
}

// NewSnapshot builds a Snapshot from nodes and edges, failing with
// *StructuralError unless they form a single rooted tree: edge count is node
// count − 1, every edge joins known nodes, no node has two parents, and every
// node is reachable from every other over undirected links.
func NewSnapshot(nodes []*Node, edges []*Edge) (*Snapshot, error) {
	fail := func(reason string) error {
		return &StructuralError{Reason: reason, Nodes: len(nodes), Edges: len(edges)}
	}

	if len(nodes) == 0 {
		return nil, fail("a tree has at least a root node")
	}
	if len(edges) != len(nodes)-1 {
		return nil, fail("edge count must be node count minus one")
	}

	nodeMap := make(map[NodeID]*Node, len(nodes))
	for _, n := range nodes {
		if _, ok := nodeMap[n.ID]; ok {
			return nil, fail(fmt.Sprintf("duplicate node id %d", n.ID))
		}
		if n.Data == nil {
			n.Data = NodeData{}
		}
		nodeMap[n.ID] = n
	}

	edgeMap := make(map[EdgeID]*Edge, len(edges))
	parent := make(map[NodeID]NodeID, len(edges))
	children := make(map[NodeID][]NodeID)
	for _, e := range edges {
		if _, ok := edgeMap[e.ID]; ok {
			return nil, fail(fmt.Sprintf("duplicate edge id %d", e.ID))
		}
		if _, ok := nodeMap[e.Source]; !ok {
			return nil, fail(fmt.Sprintf("edge %d leaves unknown node %d", e.ID, e.Source))
		}
		if _, ok := nodeMap[e.Target]; !ok {
			return nil, fail(fmt.Sprintf("edge %d enters unknown node %d", e.ID, e.Target))
		}
		if _, ok := parent[e.Target]; ok {
			return nil, fail(fmt.Sprintf("node %d has more than one parent", e.Target))
		}
		if e.Data == nil {
			e.Data = EdgeData{}
		}
		edgeMap[e.ID] = e
		parent[e.Target] = e.Source
		children[e.Source] = append(children[e.Source], e.Target)
	}

	s := &Snapshot{
		nodes:    nodeMap,
		edges:    edgeMap,
		parent:   parent,
		children: children,
	}

	if visited := s.reachable(nodes[0].ID); visited != len(nodes) {
		return nil, fail(fmt.Sprintf("disconnected: reached %d of %d nodes", visited, len(nodes)))
	}

	// n-1 edges with distinct targets leave exactly one node parentless.
	for id := range nodeMap {
		if _, ok := parent[id]; !ok {
			s.root = id
		}
	}

	for _, n := range nodeMap {
		if n.SelectedEdge == nil {
			continue
		}
		e, ok := edgeMap[*n.SelectedEdge]
		if !ok || e.Source != n.ID {
			return nil, fail(fmt.Sprintf("selected edge of node %d does not leave the node", n.ID))
		}
	}

	for _, c := range children {
		sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	}

	return s, nil
}

// reachable counts nodes reachable from start over the union of parent and
// child links. Since parentage is already known to be unique and the edge
// count correct, a full count proves the structure is one connected tree.
func (s *Snapshot) reachable(start NodeID) int {
	visited := map[NodeID]bool{start: true}
	queue := []NodeID{start}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		neighbors := s.children[id]
		if p, ok := s.parent[id]; ok {
			neighbors = append(neighbors[:len(neighbors):len(neighbors)], p)
		}
		for _, n := range neighbors {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited)
}

// Root returns the id of the unique parentless node.
func (s *Snapshot) Root() NodeID {
	return s.root
}

// Len returns the number of nodes.
func (s *Snapshot) Len() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges, always Len()-1.
func (s *Snapshot) EdgeCount() int {
	return len(s.edges)
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id NodeID) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// Edge returns the edge with the given id.
func (s *Snapshot) Edge(id EdgeID) (*Edge, error) {
	e, ok := s.edges[id]
	if !ok {
		return nil, fmt.Errorf("edge %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// OutEdges returns the edges leaving a node in ascending edge-id order.
// It scans every edge; trees here are small enough that O(E) per call is fine.
func (s *Snapshot) OutEdges(id NodeID) ([]*Edge, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	var out []*Edge
	for _, e := range s.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InEdges returns the edges entering a node in ascending edge-id order.
// Every node except the root has exactly one.
func (s *Snapshot) InEdges(id NodeID) ([]*Edge, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	var in []*Edge
	for _, e := range s.edges {
		if e.Target == id {
			in = append(in, e)
		}
	}
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	return in, nil
}

// Parent returns the id of a node's parent, or ErrRootHasNoParent for the
// root.
func (s *Snapshot) Parent(id NodeID) (NodeID, error) {
	if _, ok := s.nodes[id]; !ok {
		return 0, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	p, ok := s.parent[id]
	if !ok {
		return 0, fmt.Errorf("node %d: %w", id, ErrRootHasNoParent)
	}
	return p, nil
}

// Children returns the ids of a node's children, empty for leaves.
func (s *Snapshot) Children(id NodeID) ([]NodeID, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	c := s.children[id]
	out := make([]NodeID, len(c))
	copy(out, c)
	return out, nil
}

// NodeIDs returns all node ids in ascending order.
func (s *Snapshot) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
