/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/api"
	"github.com/ssargent/uwbwire/pkg/codec"
	"github.com/ssargent/uwbwire/pkg/record"
)

// captureCmd groups the capture store commands
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Store and replay captured payloads",
	Long: `Manage the local capture store. Payloads are validated against their
kind before they are stored and are rendered again when read back.`,
}

var capturePutCmd = &cobra.Command{
	Use:   "put <kind> <hex>...",
	Short: "Store a payload",
	Long: `Store a payload in the capture store and print its capture ID.

Example:
  uwbwire capture put range 01000000 02000000 b0ff`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store api.CaptureStore) error {
			return runCapturePut(cmd.OutOrStdout(), store, args[0], strings.Join(args[1:], ""))
		})
	},
}

var captureGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a stored payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store api.CaptureStore) error {
			return runCaptureGet(cmd.OutOrStdout(), store, args[0])
		})
	},
}

var captureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored payloads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		return withStore(func(store api.CaptureStore) error {
			return runCaptureList(cmd.OutOrStdout(), store, kind)
		})
	},
}

var captureDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store api.CaptureStore) error {
			return runCaptureDelete(cmd.OutOrStdout(), store, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.AddCommand(capturePutCmd, captureGetCmd, captureListCmd, captureDeleteCmd)
	captureListCmd.Flags().String("kind", "", "Only list captures of this kind")
}

// withStore opens the configured capture store for the duration of fn
func withStore(fn func(api.CaptureStore) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close capture store", "error", err)
		}
	}()
	return fn(store)
}

func runCapturePut(w io.Writer, store api.CaptureStore, kindName, hexText string) error {
	kind, err := record.ParseKind(kindName)
	if err != nil {
		return err
	}
	payload, err := codec.ParseHex(hexText)
	if err != nil {
		return err
	}

	entry, err := store.Put(kind, payload)
	if err != nil {
		return err
	}
	logger.Info("capture stored", "id", entry.ID, "kind", kind)
	_, err = fmt.Fprintln(w, entry.ID)
	return err
}

func runCaptureGet(w io.Writer, store api.CaptureStore, idText string) error {
	id, err := ksuid.Parse(idText)
	if err != nil {
		return fmt.Errorf("invalid capture id: %w", err)
	}
	entry, err := store.Get(id)
	if err != nil {
		return err
	}
	rec, err := entry.Decode()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "ID:       %s\n", entry.ID)
	fmt.Fprintf(w, "Kind:     %s\n", entry.Kind)
	fmt.Fprintf(w, "Captured: %s\n", entry.Captured.Format(time.RFC3339Nano))
	fmt.Fprintf(w, "Payload:  %s\n", hex.EncodeToString(entry.Payload))
	_, err = fmt.Fprintf(w, "Record:   %s\n", rec)
	return err
}

func runCaptureList(w io.Writer, store api.CaptureStore, kindName string) error {
	var kind record.Kind
	if kindName != "" {
		k, err := record.ParseKind(kindName)
		if err != nil {
			return err
		}
		kind = k
	}

	entries, err := store.List(kind)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-12s  %s  %s\n", e.ID, e.Kind, e.Captured.Format(time.RFC3339), hex.EncodeToString(e.Payload))
	}
	return nil
}

func runCaptureDelete(w io.Writer, store api.CaptureStore, idText string) error {
	id, err := ksuid.Parse(idText)
	if err != nil {
		return fmt.Errorf("invalid capture id: %w", err)
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Deleted capture %s\n", id)
	return err
}
