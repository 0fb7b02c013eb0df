/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/kvalheim/rowscan/pkg/blob"
	"github.com/kvalheim/rowscan/pkg/scan"
)

// Scan metrics register against the default Prometheus registry, so they
// are created at most once per process.
var (
	scanMetrics     *scan.Metrics
	scanMetricsOnce sync.Once
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a packed identifier blob",
	Long: `Scan a packed identifier blob in bounded-size chunks, decode every
fixed-width record it contains, and print (ordinal, identifier) pairs in
blob order.

The blob is either a file given as an argument or a previously loaded blob
addressed with --blob.

Examples:
  rowscan scan dump.bin
  rowscan scan dump.bin --base-ordinal=100 --chunk-size=1400
  rowscan scan --blob=2PZburmJPJtbZp1JDTs3D9GWLnA --format=json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blobID, _ := cmd.Flags().GetString("blob")
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		baseOrdinal, _ := cmd.Flags().GetInt64("base-ordinal")
		startOffset, _ := cmd.Flags().GetInt64("start-offset")
		format, _ := cmd.Flags().GetString("format")

		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}

		source, cleanup, err := openSource(args, blobID)
		if err != nil {
			return err
		}
		defer cleanup()

		if chunkSize == 0 {
			chunkSize = cfg.Scan.ChunkSize
		}
		if !cmd.Flags().Changed("base-ordinal") {
			baseOrdinal = cfg.Scan.BaseOrdinal
		}

		scanner, err := scan.NewScanner(source, scan.Config{
			ChunkSize:   chunkSize,
			BaseOrdinal: baseOrdinal,
			StartOffset: startOffset,
		})
		if err != nil {
			return err
		}

		scanMetricsOnce.Do(func() { scanMetrics = scan.NewMetrics() })
		scanner.UseMetrics(scanMetrics)

		if format == "json" {
			return printEntriesJSON(cmd, scanner)
		}
		return printEntriesText(cmd, scanner)
	},
}

// openSource resolves the blob source from the command line: a file path
// argument or a stored blob id.
func openSource(args []string, blobID string) (blob.Source, func(), error) {
	if blobID != "" {
		id, err := ksuid.Parse(blobID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid blob id %q: %w", blobID, err)
		}

		store, err := container.OpenStore(blob.StoreConfig{Path: filepath.Join(cfg.DataDir, "blobs")})
		if err != nil {
			return nil, nil, fmt.Errorf("opening blob store: %w", err)
		}

		source, err := store.Source(id)
		if err != nil {
			store.Close()
			return nil, nil, err
		}

		return source, func() { store.Close() }, nil
	}

	if len(args) != 1 {
		return nil, nil, fmt.Errorf("either a blob file argument or --blob is required")
	}

	source, err := blob.OpenFileSource(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening blob file: %w", err)
	}

	return source, func() { source.Close() }, nil
}

func printEntriesText(cmd *cobra.Command, scanner *scan.Scanner) error {
	it := scanner.Entries()
	defer it.Close()

	count := 0
	for it.Next() {
		entry := it.Entry()
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", entry.Ordinal, entry.ID)
		count++
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("scan %s aborted after %d records: %w", scanner.ID(), count, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "scan %s: %d records\n", scanner.ID(), count)
	return nil
}

func printEntriesJSON(cmd *cobra.Command, scanner *scan.Scanner) error {
	it := scanner.Entries()
	defer it.Close()

	entries := []scan.Entry{}
	for it.Next() {
		entries = append(entries, it.Entry())
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("scan %s aborted after %d records: %w", scanner.ID(), len(entries), err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("blob", "", "Scan a stored blob by its id instead of a file")
	scanCmd.Flags().Int("chunk-size", 0, "Bytes per chunk read (default from config)")
	scanCmd.Flags().Int64("base-ordinal", 0, "Ordinal assigned to the first record (default from config)")
	scanCmd.Flags().Int64("start-offset", 0, "Byte offset to start scanning from")
	scanCmd.Flags().String("format", "text", "Output format: text or json")
}
