package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/auda"
)

func newPathCmd() *cobra.Command {
	var keepCase bool
	cmd := &cobra.Command{
		Use:   "path KEY...",
		Short: "Show how keys split into path segments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.OutOrStdout(), args, !keepCase)
		},
	}
	cmd.Flags().BoolVar(&keepCase, "keep-case", false, "do not lower-case keys")
	return cmd
}

func runPath(w io.Writer, keys []string, toLower bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range keys {
		for i, seg := range auda.ParsePath(key, toLower) {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%q\n", key, i, seg.Kind, seg.Key)
		}
	}
	return tw.Flush()
}
