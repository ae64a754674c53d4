/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/tuplestore/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a tuplestore config file",
	Long: `Init creates a tuplestore config file with a freshly generated
client API key, if one doesn't already exist at the target path.

Examples:
  tuplestore init
  tuplestore init --config ./tuplestore.yaml --data-dir ./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("config already exists at %s (use --force to overwrite)\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("created configuration at %s\n", configPath)
		cmd.Printf("data directory: %s\n", cfg.DataDir)
		cmd.Printf("client API key: %s\n", cfg.Security.ClientAPIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	initCmd.Flags().String("data-dir", "./data", "Data directory for the store")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
