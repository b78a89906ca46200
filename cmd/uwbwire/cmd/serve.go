/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/uwbwire/pkg/api"
	"github.com/ssargent/uwbwire/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the uwbwire REST API server. Settings come from the configuration
file and may be overridden with flags.

Examples:
  uwbwire serve
  uwbwire serve --port 9400 --api-key mysecretkey --data-dir ./captures`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *appConfig
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		serverConfig, err := serverConfigFrom(&cfg)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("🚀 Starting uwbwire server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📁 Capture directory: %s\n", cfg.DataDir)

		return container.GetServerFactory().CreateServerStarter().StartServer(ctx, store, serverConfig, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9300, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
}

// serverConfigFrom maps the loaded configuration to the API server settings.
// The "auto" placeholder means init has not been run yet.
func serverConfigFrom(cfg *config.Config) (api.ServerConfig, error) {
	if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
		return api.ServerConfig{}, fmt.Errorf("no API key configured: run 'uwbwire init' or pass --api-key")
	}
	return api.ServerConfig{
		Bind:   cfg.Bind,
		Port:   cfg.Port,
		APIKey: cfg.Security.APIKey,
	}, nil
}
