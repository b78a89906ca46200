/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/codec"
	"github.com/ssargent/uwbwire/pkg/record"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <kind> <json>",
	Short: "Encode a record to its wire payload",
	Long: `Build a record from its JSON fields and print the wire payload as hex.

Examples:
  uwbwire encode network-id '{"id": 4660}'
  uwbwire encode uwb-settings '{"channel": 5, "bitrate": 1, "prf": 2, "plen": 40, "gain_db": 10}'
  uwbwire encode device-list '{"ids": [1, 2, 3]}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(w io.Writer, kindName, fields string) error {
	kind, err := record.ParseKind(kindName)
	if err != nil {
		return err
	}
	rec, err := record.New(kind, 0)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(strings.NewReader(fields))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return fmt.Errorf("invalid %s fields: %w", kind, err)
	}

	buf, err := codec.NewRecordCodec().Encode(rec)
	if err != nil {
		return err
	}
	logger.Debug("encoded record", "kind", kind, "bytes", len(buf))

	// Render what the wire carries, after quantization
	wire, err := record.Decode(kind, buf)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", hex.EncodeToString(buf), wire)
	return err
}
