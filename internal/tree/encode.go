package tree

import (
	"encoding/json"
	"fmt"
)

// Wire format, fixed by the visualizer frontend:
//
//	{"logs": [{"nodes": {"0": {"id", "data", "selected_edge"}, ...},
//	           "edges": {"0": {"id", "source", "target", "data"}, ...}}, ...]}
//
// selected_edge is null when unset. Only nodes and edges cross the boundary;
// parent/children indices are rebuilt on decode. All numbers are plain JSON
// numbers.

type snapshotWire struct {
	Nodes map[NodeID]*Node `json:"nodes"`
	Edges map[EdgeID]*Edge `json:"edges"`
}

type logWire struct {
	Logs []*Snapshot `json:"logs"`
}

// MarshalJSON encodes the snapshot as {"nodes": {...}, "edges": {...}} keyed
// by decimal ids.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotWire{Nodes: s.nodes, Edges: s.edges})
}

// UnmarshalJSON rebuilds a snapshot from wire form, revalidating the tree
// invariants and recomputing the derived indices.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	nodes := make([]*Node, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		nodes = append(nodes, n)
	}
	edges := make([]*Edge, 0, len(w.Edges))
	for _, e := range w.Edges {
		edges = append(edges, e)
	}
	built, err := NewSnapshot(nodes, edges)
	if err != nil {
		return err
	}
	*s = *built
	return nil
}

// MarshalJSON encodes the log as {"logs": [...]}.
func (l *Log) MarshalJSON() ([]byte, error) {
	snaps := l.snapshots
	if snaps == nil {
		snaps = []*Snapshot{}
	}
	return json.Marshal(logWire{Logs: snaps})
}

// UnmarshalJSON rebuilds a log from wire form.
func (l *Log) UnmarshalJSON(data []byte) error {
	var w logWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding log: %w", err)
	}
	l.snapshots = w.Logs
	return nil
}

// Encode serializes a Log to the wire format.
func Encode(l *Log) ([]byte, error) {
	return json.Marshal(l)
}

// EncodeIndent serializes a Log to indented wire format for humans.
func EncodeIndent(l *Log) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Decode parses wire-format bytes back into a Log. Every snapshot passes
// through NewSnapshot, so a log that decodes is known to be well-formed.
func Decode(data []byte) (*Log, error) {
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
