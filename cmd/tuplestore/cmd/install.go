/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install tuplestore as a systemd service",
	Long: `Install tuplestore as a systemd service on Linux systems.

This command will:
- Check if running as root (required for installation)
- Stop any existing tuplestore service
- Build and install the latest binary
- Create systemd service configuration
- Enable and start the service

Example:
  sudo tuplestore install --api-key=mysecretkey --data-dir=/opt/tuplestore/data`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip the root command's store initialization for install command
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if os.Geteuid() != 0 {
			cmd.Printf("Error: tuplestore install must be run as root (sudo)\n")
			cmd.Printf("Usage: sudo tuplestore install [flags]\n")
			os.Exit(1)
		}

		dataDir, _ := cmd.Flags().GetString("data-dir")
		apiKey, _ := cmd.Flags().GetString("api-key")
		port, _ := cmd.Flags().GetInt("port")
		force, _ := cmd.Flags().GetBool("force")

		if apiKey == "" {
			cmd.Printf("Error: --api-key is required\n")
			os.Exit(1)
		}

		cmd.Printf("Starting tuplestore installation...\n")

		if err := createDataDirectory(dataDir); err != nil {
			cmd.Printf("Error creating data directory: %v\n", err)
			os.Exit(1)
		}

		isRunning, err := isServiceRunning()
		if err != nil {
			cmd.Printf("Warning: Could not check service status: %v\n", err)
		}

		if isRunning {
			cmd.Printf("Stopping existing tuplestore service...\n")
			if err := stopService(); err != nil {
				cmd.Printf("Error stopping service: %v\n", err)
				if !force {
					os.Exit(1)
				}
			}
		}

		if err := buildAndInstallBinary(); err != nil {
			cmd.Printf("Error building/installing binary: %v\n", err)
			os.Exit(1)
		}

		if err := createSystemdService(dataDir, apiKey, port); err != nil {
			cmd.Printf("Error creating systemd service: %v\n", err)
			os.Exit(1)
		}

		if err := reloadSystemd(); err != nil {
			cmd.Printf("Error reloading systemd: %v\n", err)
			os.Exit(1)
		}

		if err := enableAndStartService(); err != nil {
			cmd.Printf("Error enabling/starting service: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("tuplestore installation completed successfully\n")
		cmd.Printf("Service is running and will start automatically on boot.\n")
		cmd.Printf("Data directory: %s\n", dataDir)
		cmd.Printf("API endpoint: http://localhost:%d\n", port)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().String("data-dir", "/opt/tuplestore/data", "Data directory for tuplestore")
	installCmd.Flags().String("api-key", "", "API key for client authentication (required)")
	installCmd.Flags().Int("port", 8080, "Port for the API server")
	installCmd.Flags().Bool("force", false, "Force reinstall even if errors occur")
	installCmd.MarkFlagRequired("api-key")
}

// createDataDirectory creates the data directory with proper permissions
func createDataDirectory(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	if _, err := exec.LookPath("id"); err == nil {
		if err := exec.Command("chown", "-R", "tuplestore:tuplestore", dataDir).Run(); err != nil {
			fmt.Printf("Warning: Could not change ownership to tuplestore user: %v\n", err)
		}
	}

	return nil
}

// isServiceRunning checks if the tuplestore service is currently running
func isServiceRunning() (bool, error) {
	cmd := exec.Command("systemctl", "is-active", "tuplestore")
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	status := strings.TrimSpace(string(output))
	return status == "active", nil
}

// stopService stops the tuplestore service
func stopService() error {
	cmd := exec.Command("systemctl", "stop", "tuplestore")
	return cmd.Run()
}

// buildAndInstallBinary builds the latest binary and installs it
func buildAndInstallBinary() error {
	fmt.Printf("Building tuplestore binary...\n")
	buildCmd := exec.Command("make", "build-linux")
	if err := buildCmd.Run(); err != nil {
		return fmt.Errorf("failed to build binary: %w", err)
	}

	fmt.Printf("Installing binary to /usr/local/bin...\n")
	installCmd := exec.Command("cp", "bin/tuplestore_unix", "/usr/local/bin/tuplestore")
	if err := installCmd.Run(); err != nil {
		return fmt.Errorf("failed to install binary: %w", err)
	}

	if err := exec.Command("chmod", "+x", "/usr/local/bin/tuplestore").Run(); err != nil {
		return fmt.Errorf("failed to make binary executable: %w", err)
	}

	return nil
}

// createSystemdService creates the systemd service file
func createSystemdService(dataDir, apiKey string, port int) error {
	serviceContent := fmt.Sprintf(`[Unit]
Description=tuplestore Key-Value Store
After=network.target

[Service]
Type=simple
User=tuplestore
Environment=DATA_DIR=%s
ExecStart=/usr/local/bin/tuplestore serve --data-dir=${DATA_DIR} --api-key=%s --port=%d
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`, dataDir, apiKey, port)

	servicePath := "/etc/systemd/system/tuplestore.service"
	file, err := os.Create(servicePath)
	if err != nil {
		return fmt.Errorf("failed to create service file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(serviceContent); err != nil {
		return fmt.Errorf("failed to write service file: %w", err)
	}

	fmt.Printf("Created systemd service file: %s\n", servicePath)
	return nil
}

// reloadSystemd reloads the systemd daemon
func reloadSystemd() error {
	cmd := exec.Command("systemctl", "daemon-reload")
	return cmd.Run()
}

// enableAndStartService enables and starts the tuplestore service
func enableAndStartService() error {
	fmt.Printf("Enabling tuplestore service...\n")
	if err := exec.Command("systemctl", "enable", "tuplestore").Run(); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}

	fmt.Printf("Starting tuplestore service...\n")
	if err := exec.Command("systemctl", "start", "tuplestore").Run(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	return nil
}
