/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kvalheim/rowscan/pkg/blob"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a blob file into the blob store",
	Long: `Load a packed identifier blob file into the local blob store and
print the identifier assigned to it. The blob can then be scanned with:

  rowscan scan --blob=<id>

Example:
  rowscan load dump.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading blob file: %w", err)
		}

		store, err := container.OpenStore(blob.StoreConfig{Path: filepath.Join(cfg.DataDir, "blobs")})
		if err != nil {
			return fmt.Errorf("opening blob store: %w", err)
		}
		defer store.Close()

		id, err := store.Put(data)
		if err != nil {
			return fmt.Errorf("storing blob: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", id)
		fmt.Fprintf(cmd.ErrOrStderr(), "loaded %d bytes from %s\n", len(data), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
