/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/record"
)

// kindsCmd represents the kinds command
var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the record kinds and their wire layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKinds(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tBYTES\tFORMAT")
	for _, k := range record.Kinds() {
		rec, err := record.New(k, 0)
		if err != nil {
			return err
		}
		if k == record.KindDeviceList {
			fmt.Fprintf(tw, "%s\t2n\tH...\n", k)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", k, rec.ByteSize(), rec.Format())
	}
	return tw.Flush()
}
