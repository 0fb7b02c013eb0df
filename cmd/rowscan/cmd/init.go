/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvalheim/rowscan/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the RowScan configuration",
	Long: `Write a fresh RowScan configuration file.

This command will:
- Create the configuration directory
- Write a configuration file with default scanner settings
- Record the data directory used by the blob store

Examples:
  rowscan init
  rowscan init --config=./rowscan.yaml --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		bootstrapped, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("Data directory: %s\n", bootstrapped.DataDir)
		cmd.Printf("Chunk size: %d bytes\n", bootstrapped.Scan.ChunkSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
