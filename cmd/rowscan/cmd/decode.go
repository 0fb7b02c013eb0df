/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvalheim/rowscan/pkg/rowid"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <record>",
	Short: "Decode a packed record into its identifier",
	Long: `Decode a 28-character hexadecimal record into its 18-character
textual identifier.

Example:
  rowscan decode 00108310518720928b30d38f4142`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := rowid.NewCodec()

		id, err := codec.DecodeHex(args[0])
		if err != nil {
			return fmt.Errorf("decoding record: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
