package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"canopy/treelog/internal/search"
	"canopy/treelog/internal/tree"
)

var (
	convertAlgo   string
	convertOut    string
	convertIndent bool
	convertSave   bool
	convertLabel  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <result.json>",
	Short: "Convert a recorded search result into a visualization log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading result: %w", err)
		}

		log, err := convertResult(data, convertAlgo)
		if err != nil {
			return err
		}

		encoded, err := encodeLog(log, convertIndent)
		if err != nil {
			return err
		}

		if convertSave {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			st, err := OpenStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			label := convertLabel
			if label == "" {
				label = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			id, err := st.Put(label, convertAlgo, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved log %s (%d snapshots)\n", id, log.Len())
		}

		if convertOut != "" {
			return os.WriteFile(convertOut, encoded, 0o644)
		}
		if !convertSave {
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		}
		return nil
	},
}

func convertResult(data []byte, algo string) (*tree.Log, error) {
	switch algo {
	case "mcts":
		var res search.MCTSResult
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("parsing mcts result: %w", err)
		}
		return tree.FromMCTS(&res, nil)
	case "beam":
		var res search.BeamResult
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("parsing beam search result: %w", err)
		}
		return tree.FromBeamSearch(&res, nil)
	case "dfs":
		var res search.DFSResult
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("parsing dfs result: %w", err)
		}
		return tree.FromDFS(&res, nil)
	default:
		return nil, fmt.Errorf("unknown algorithm %q (want mcts, beam or dfs)", algo)
	}
}

func encodeLog(l *tree.Log, indent bool) ([]byte, error) {
	if indent {
		return tree.EncodeIndent(l)
	}
	return tree.Encode(l)
}

func init() {
	convertCmd.Flags().StringVar(&convertAlgo, "algo", "mcts", "Result type: mcts, beam or dfs")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Write the encoded log to this file instead of stdout")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", false, "Indent the JSON output")
	convertCmd.Flags().BoolVar(&convertSave, "save", false, "Save the converted log to the local store")
	convertCmd.Flags().StringVar(&convertLabel, "label", "", "Label for the saved log (default: result file name)")
	rootCmd.AddCommand(convertCmd)
}
