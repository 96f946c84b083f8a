package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"canopy/treelog/internal/tree"
)

var inspectJSON bool

// SnapshotReport summarizes one snapshot for inspection output.
type SnapshotReport struct {
	Step         int   `json:"step"`
	Nodes        int   `json:"nodes"`
	Edges        int   `json:"edges"`
	Depth        int   `json:"depth"`
	Leaves       int   `json:"leaves"`
	SelectedPath []int `json:"selected_path"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file-or-id>",
	Short: "Summarize the snapshots of a log: sizes, depth, selected path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, label, err := resolveLog(args[0])
		if err != nil {
			return err
		}

		reports := make([]SnapshotReport, 0, log.Len())
		for step, snap := range log.Snapshots() {
			r, err := reportSnapshot(step, snap)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}

		if inspectJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d snapshot(s)\n", label, log.Len())
		for _, r := range reports {
			path := make([]string, len(r.SelectedPath))
			for i, id := range r.SelectedPath {
				path[i] = fmt.Sprint(id)
			}
			fmt.Fprintf(out, "  step %d: %d nodes, %d edges, depth %d, %d leaves, path %s\n",
				r.Step, r.Nodes, r.Edges, r.Depth, r.Leaves, strings.Join(path, " -> "))
		}
		return nil
	},
}

// resolveLog loads a log from a file path if one exists, otherwise from the
// local store by id.
func resolveLog(arg string) (*tree.Log, string, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, "", fmt.Errorf("reading log: %w", err)
		}
		log, err := tree.Decode(data)
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s: %w", arg, err)
		}
		return log, arg, nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}
	st, err := OpenStore(cfg)
	if err != nil {
		return nil, "", err
	}
	defer st.Close()

	rec, log, err := st.Get(arg)
	if err != nil {
		return nil, "", err
	}
	return log, fmt.Sprintf("%s (%s)", rec.Label, rec.ID), nil
}

func reportSnapshot(step int, snap *tree.Snapshot) (SnapshotReport, error) {
	r := SnapshotReport{
		Step:  step,
		Nodes: snap.Len(),
		Edges: snap.EdgeCount(),
	}

	// Depth and leaf count via the derived child index.
	type level struct {
		id    tree.NodeID
		depth int
	}
	stack := []level{{id: snap.Root()}}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if l.depth > r.Depth {
			r.Depth = l.depth
		}
		kids, err := snap.Children(l.id)
		if err != nil {
			return r, err
		}
		if len(kids) == 0 {
			r.Leaves++
		}
		for _, k := range kids {
			stack = append(stack, level{id: k, depth: l.depth + 1})
		}
	}

	// Follow selected edges from the root.
	id := snap.Root()
	r.SelectedPath = []int{int(id)}
	for {
		node, err := snap.Node(id)
		if err != nil {
			return r, err
		}
		if node.SelectedEdge == nil {
			break
		}
		edge, err := snap.Edge(*node.SelectedEdge)
		if err != nil {
			return r, err
		}
		id = edge.Target
		r.SelectedPath = append(r.SelectedPath, int(id))
	}

	return r, nil
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(inspectCmd)
}
