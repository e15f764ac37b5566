// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/msword2image/internal/history"
	"github.com/pdiddy/msword2image/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions",
	Long: `History lists the conversions recorded by previous convert runs, newest
first. Use --yaml to dump the full journal.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (0 = use default)")
	historyCmd.Flags().Bool("yaml", false, "export every entry as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return store.ExportYAML(cmd.Context(), os.Stdout)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	formatHistory(entries)
	return nil
}

func formatHistory(entries []types.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-9s  %-40s  %-6s  %-30s  %s\n",
		"ID", "Started", "Status", "Input", "Format", "Output", "Size")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 130))

	for _, e := range entries {
		output := e.Output.Value
		if e.Output.Type == types.OutputBase64String {
			output = "(base64)"
		}
		size := "-"
		if e.Status == types.ConversionDone {
			size = humanize.Bytes(uint64(e.Bytes))
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-9s  %-40s  %-6s  %-30s  %s\n",
			e.ID, e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.Status,
			truncate(e.Input.Value, 40), e.Output.Format, truncate(output, 30), size)
	}

	fmt.Fprintf(os.Stdout, "\n%d conversions\n", len(entries))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
