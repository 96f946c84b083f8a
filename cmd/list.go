package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	listLimit int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logs in the local store, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		st, err := OpenStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.List(listLimit)
		if err != nil {
			return err
		}

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no logs stored")
			return nil
		}
		for _, r := range records {
			created := time.UnixMilli(r.CreatedAt).Format("2006-01-02 15:04")
			fmt.Fprintf(out, "%s  %-5s %3d snapshot(s)  %s  %s\n",
				r.ID, r.Algorithm, r.Snapshots, created, r.Label)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a log from the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		st, err := OpenStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of logs to list")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
}
