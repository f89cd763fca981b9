// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfmark CLI.
// See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfmark CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfmark",
	Short: "Convert PDF documents to Markdown",
	Long: `pdfmark converts a PDF document into Markdown, with explicit table
extraction and optional one-file-per-page output.

Text and layout extraction are delegated to a document engine (the
in-process pdfplumber backend by default, or a markitdown container).
Tables are detected per page under several strategies, deduplicated by
bounding box, and appended as Markdown table blocks.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfmark.yaml or ~/.config/pdfmark/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfmark")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfmark"))
		}
	}

	viper.SetEnvPrefix("PDFMARK")
	viper.AutomaticEnv()

	viper.SetDefault("backend", "plumber")
	viper.SetDefault("manifest", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
