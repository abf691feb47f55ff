package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "liberty",
	Short: "Liberty cell-library parser and dataset extractor",
	Long: `A toolkit for parsing Liberty (.lib) standard-cell libraries, classifying
cells by logic function, and extracting training datasets for cell-embedding
pipelines.

Examples:
  liberty parse asap7.lib                        # Parse and summarize a library
  liberty classify asap7.lib                     # Group cells by logic type
  liberty export asap7.lib -o data/processed     # Write Lib2Vec JSON datasets
  liberty sample asap7.lib --points 150          # Derive a characterization grid`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
