package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"canopy/treelog/internal/client"
	"canopy/treelog/internal/tree"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file-or-id>",
	Short: "Upload a log to the visualizer and print its access URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		log, _, err := resolveLog(args[0])
		if err != nil {
			return err
		}

		encoded, err := tree.Encode(log)
		if err != nil {
			return err
		}

		c := client.New(cfg.APIBaseURL, cfg.VisualizerBaseURL, nil)
		receipt, err := c.PostEncoded(cmd.Context(), encoded)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", receipt.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "visualizer: %s\n", c.AccessURL(receipt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
