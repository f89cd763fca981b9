// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfmark/internal/manifest"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs from the manifest",
	Long: `History lists conversions recorded in the SQLite manifest (see the
--manifest flag of convert). Runs are shown newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("manifest", "", "manifest database path (default from config)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("manifest")
	if dbPath == "" {
		dbPath = viper.GetString("manifest")
	}
	if dbPath == "" {
		return fmt.Errorf("no manifest configured: pass --manifest or set manifest in pdfmark.yaml")
	}

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := manifest.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-7s  %5s  %6s  %9s  %s\n",
		"When", "Mode", "Pages", "Tables", "Duration", "Input")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-20s  %-7s  %5d  %6d  %9s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode, r.Pages, r.Tables, r.Duration.Round(time.Millisecond), filepath.Base(r.Input))
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}
