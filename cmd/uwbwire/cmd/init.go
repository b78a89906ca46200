/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create the uwbwire configuration file with secure defaults and a freshly
generated API key for the REST server.

Examples:
  uwbwire init
  uwbwire init --config ./uwbwire.yaml --data-dir ./captures --print-keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")
		printKeys, _ := cmd.Flags().GetBool("print-keys")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		return runInit(cmd.OutOrStdout(), configPath, dataDir, force, printKeys)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	initCmd.Flags().Bool("print-keys", false, "Print the generated API key")
}

func runInit(w io.Writer, configPath, dataDir string, force, printKeys bool) error {
	if config.ConfigExists(configPath) && !force {
		fmt.Fprintf(w, "Configuration already exists at %s. Use --force to overwrite.\n", configPath)
		return nil
	}

	cfg, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "✅ Configuration created at %s\n", configPath)
	fmt.Fprintf(w, "Capture directory: %s\n", cfg.DataDir)
	if printKeys {
		fmt.Fprintf(w, "API Key: %s\n", cfg.Security.APIKey)
		fmt.Fprintf(w, "⚠️  Store this key securely! It is also saved in %s\n", configPath)
	}
	return nil
}
