// Package search defines the result shapes produced by the tree-search
// algorithms this tool visualizes. The algorithms themselves run elsewhere;
// these types are the contract their recorded output must satisfy, with JSON
// tags so a result dumped to disk can be loaded back by the CLI.
package search

// MCTSNode is one node of a Monte-Carlo search tree.
//
// Children distinguishes nil (the node was never expanded) from an empty
// slice (expanded, no children). Q and Reward are pointers for the same
// reason: a node that was never backed up has no value estimate, not a zero
// one.
type MCTSNode struct {
	ID                int            `json:"id"`
	State             any            `json:"state,omitempty"`
	Q                 *float64       `json:"q,omitempty"`
	Reward            *float64       `json:"reward,omitempty"`
	RewardDetails     map[string]any `json:"reward_details,omitempty"`
	FastRewardDetails map[string]any `json:"fast_reward_details,omitempty"`
	Children          []*MCTSNode    `json:"children,omitempty"`
}

// MCTSResult is a completed MCTS run. TreeState is the final tree. When the
// run recorded per-iteration history, TreeStateAfterEachIter holds one root
// per iteration and TraceInEachIter the node ids visited in that iteration,
// in visit order.
type MCTSResult struct {
	TreeState              *MCTSNode   `json:"tree_state"`
	TreeStateAfterEachIter []*MCTSNode `json:"tree_state_after_each_iter,omitempty"`
	TraceInEachIter        [][]int     `json:"trace_in_each_iter,omitempty"`
}

// BeamNode is one node of a beam-search tree. Children is always meaningful;
// a childless node simply has none.
type BeamNode struct {
	ID       int         `json:"id"`
	State    any         `json:"state,omitempty"`
	Action   string      `json:"action"`
	Reward   float64     `json:"reward"`
	Children []*BeamNode `json:"children,omitempty"`
}

// BeamResult is a completed beam-search run.
type BeamResult struct {
	Tree *BeamNode `json:"tree"`
}

// DFSNode is one node of a depth-first search tree.
type DFSNode struct {
	ID       int        `json:"id"`
	State    any        `json:"state,omitempty"`
	Action   string     `json:"action"`
	Reward   float64    `json:"reward"`
	Children []*DFSNode `json:"children,omitempty"`
}

// DFSResult is a completed DFS run.
type DFSResult struct {
	TreeState *DFSNode `json:"tree_state"`
}
