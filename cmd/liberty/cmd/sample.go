package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/interp"
	"github.com/spf13/cobra"
)

var samplePoints int

var sampleCmd = &cobra.Command{
	Use:   "sample <liberty-file>",
	Short: "Derive a characterization sampling grid from a library",
	Long: `Scan every lookup table in a Liberty file and derive a log-spaced
sampling grid spanning the full slew/load domain of the library.

Examples:
  liberty sample asap7.lib
  liberty sample --points 50 asap7.lib`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&samplePoints, "points", interp.DefaultPoints,
		"samples per axis")
}

func runSample(cmd *cobra.Command, args []string) error {
	res, err := loadLibrary(args[0])
	if err != nil {
		return err
	}

	grid, err := interp.SampleGrid(res.Library, samplePoints)
	if err != nil {
		return fmt.Errorf("failed to derive grid: %w", err)
	}

	fmt.Printf("Input slew:  %d samples, [%g, %g]\n",
		len(grid.Slew), grid.Slew[0], grid.Slew[len(grid.Slew)-1])
	fmt.Printf("Output load: %d samples, [%g, %g]\n",
		len(grid.Load), grid.Load[0], grid.Load[len(grid.Load)-1])
	fmt.Printf("Conditions:  %d (slew x load)\n", len(grid.Slew)*len(grid.Load))

	if verbose {
		fmt.Println("\nSlew samples:")
		for _, s := range grid.Slew {
			fmt.Printf("  %g\n", s)
		}
		fmt.Println("\nLoad samples:")
		for _, l := range grid.Load {
			fmt.Printf("  %g\n", l)
		}
	}
	return nil
}
