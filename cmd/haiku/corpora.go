package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "List the available corpora",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd, newLogger(cmd))
		if err != nil {
			return err
		}

		entries := lib.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no corpora found")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFILE\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.File, e.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(corporaCmd)
}
