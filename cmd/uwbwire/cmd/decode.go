/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/codec"
	"github.com/ssargent/uwbwire/pkg/record"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <kind> <hex>...",
	Short: "Decode a wire payload",
	Long: `Decode a hex payload as the given record kind and print its rendering.

Hex may be split across arguments and may use ':' or '-' separators.

Examples:
  uwbwire decode range 01000000 02000000 b0ff
  uwbwire decode uwb-settings 05:81:28:14 --json
  uwbwire decode device-list 0100 --size 4`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		asJSON, _ := cmd.Flags().GetBool("json")
		return runDecode(cmd.OutOrStdout(), args[0], strings.Join(args[1:], ""), size, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Int("size", 0, "Number of IDs in a device list (default: taken from the payload)")
	decodeCmd.Flags().Bool("json", false, "Print the decoded fields as JSON")
}

func runDecode(w io.Writer, kindName, hexText string, size int, asJSON bool) error {
	kind, err := record.ParseKind(kindName)
	if err != nil {
		return err
	}
	payload, err := codec.ParseHex(hexText)
	if err != nil {
		return err
	}

	rec, err := record.DecodeSized(kind, payload, size)
	if err != nil {
		return err
	}
	logger.Debug("decoded record", "kind", kind, "bytes", len(payload))

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	_, err = fmt.Fprintln(w, rec.String())
	return err
}
