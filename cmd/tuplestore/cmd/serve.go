/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/tuplestore/pkg/api"
	"github.com/ssargent/tuplestore/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the tuplestore REST API server.

If --config points to an existing file it is loaded; otherwise a config
is bootstrapped at that path (or the OS-default location) with a freshly
generated client API key.

Examples:
  tuplestore serve --port=8080
  tuplestore serve --config=./tuplestore.yaml --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		printKey, _ := cmd.Flags().GetBool("print-key")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		var cfg *config.Config
		var err error
		if config.ConfigExists(configPath) {
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		} else {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			cfg, err = config.BootstrapConfig(configPath, dataDir)
			if err != nil {
				return fmt.Errorf("bootstrapping config: %w", err)
			}
			cmd.Printf("created new configuration at %s\n", configPath)
			if printKey {
				cmd.Printf("client API key: %s\n", cfg.Security.ClientAPIKey)
			}
		}

		if port != 0 {
			cfg.Port = port
		}
		if bind != "" {
			cfg.Bind = bind
		}
		if apiKey != "" {
			cfg.Security.ClientAPIKey = apiKey
		}

		kv, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if container == nil {
			os.Exit(1)
		}
		serverFactory := container.GetServerFactory()
		starter := serverFactory.CreateServerStarter()

		return starter.StartServer(kv, api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.ClientAPIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the server to")
	serveCmd.Flags().String("api-key", "", "Client API key to require (overrides the config file)")
	serveCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	serveCmd.Flags().Bool("print-key", false, "Print the generated client API key when bootstrapping a new config")
}
