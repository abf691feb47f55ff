package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/interp"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/lib2vec"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	exportPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export <liberty-file>",
	Short: "Export Lib2Vec training datasets as JSON",
	Long: `Parse a Liberty file and write the Lib2Vec training datasets to the
output directory:

  lib2vec_data.json     per-cell records and library statistics
  functional_data.json  boolean expressions with input/output pin roles
  sampling_config.json  log-spaced slew/load characterization grid

Examples:
  liberty export asap7.lib -o data/processed
  liberty export asap7.lib -o out --sample-points 50`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "data/processed",
		"output directory")
	exportCmd.Flags().IntVar(&exportPoints, "sample-points", interp.DefaultPoints,
		"samples per grid axis")
}

func runExport(cmd *cobra.Command, args []string) error {
	res, err := loadLibrary(args[0])
	if err != nil {
		return err
	}
	lib := res.Library

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ds := lib2vec.Build(lib, nil)
	if err := writeJSON(filepath.Join(outputDir, "lib2vec_data.json"), ds); err != nil {
		return err
	}
	fmt.Printf("Exported %d cell records\n", len(ds.Cells))

	fn := lib2vec.Functional(lib)
	if err := writeJSON(filepath.Join(outputDir, "functional_data.json"), fn); err != nil {
		return err
	}
	fmt.Printf("Exported functional data for %d cells\n", len(fn))

	grid, err := interp.SampleGrid(lib, exportPoints)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: no sampling grid: %v\n", err)
	} else {
		cfg := lib2vec.NewSamplingConfig(grid)
		if err := writeJSON(filepath.Join(outputDir, "sampling_config.json"), cfg); err != nil {
			return err
		}
		fmt.Printf("Exported sampling grid (%d x %d points)\n",
			len(cfg.InputSlewSamples), len(cfg.OutputLoadSamples))
	}

	fmt.Printf("Datasets written to %s\n", outputDir)
	return nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
