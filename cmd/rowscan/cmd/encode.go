/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvalheim/rowscan/pkg/rowid"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <identifier>",
	Short: "Encode an identifier into its packed record form",
	Long: `Encode an 18-character textual identifier into the 28-character
hexadecimal rendering of its packed record.

Example:
  rowscan encode ABCDEFGHIJKLMNOPAB`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := rowid.NewCodec()

		rec, err := codec.EncodeHex(args[0])
		if err != nil {
			return fmt.Errorf("encoding identifier: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
