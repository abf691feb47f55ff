package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
	"github.com/spf13/cobra"
)

var (
	maxCells     int
	workers      int
	parseTimeout time.Duration
)

var parseCmd = &cobra.Command{
	Use:   "parse <liberty-file>",
	Short: "Parse a Liberty file and display a library summary",
	Long: `Parse a Liberty (.lib) file and display its header parameters, cell
inventory, and any diagnostics recovered during parsing.

Examples:
  liberty parse asap7.lib
  liberty parse -v --max-cells 50 asap7.lib
  liberty parse --workers 4 --timeout 30s asap7.lib`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().IntVar(&maxCells, "max-cells", 0,
		"stop after this many cells (0 = all)")
	parseCmd.Flags().IntVar(&workers, "workers", 0,
		"parallel cell decoders (0 = GOMAXPROCS)")
	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 0,
		"abort parsing after this duration (0 = none)")
}

// loadLibrary parses the file at path with the shared parse flags applied.
// Shared by every subcommand that takes a Liberty file argument.
func loadLibrary(path string) (*liberty.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	cfg := liberty.DefaultConfig()
	cfg.MaxCells = maxCells
	cfg.Workers = workers

	var progress chan liberty.Progress
	if verbose {
		progress = make(chan liberty.Progress, 64)
		cfg.Progress = progress
		go func() {
			for pr := range progress {
				switch pr.Phase {
				case "scan":
					fmt.Printf("Found %d cells\n", pr.Total)
				case "decode":
					fmt.Printf("  [%d/%d] %s\n", pr.Index+1, pr.Total, pr.Cell)
				}
			}
		}()
	}

	ctx := context.Background()
	if parseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, parseTimeout)
		defer cancel()
	}

	parser, err := liberty.NewParser(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	res, err := parser.Parse(ctx, string(raw))
	if progress != nil {
		close(progress)
	}
	if err != nil && res == nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}
	if err != nil {
		// Partial result: report the abort but keep what was decoded.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return res, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	res, err := loadLibrary(args[0])
	if err != nil {
		return err
	}
	lib := res.Library

	fmt.Printf("Library: %s\n", lib.Name)
	if lib.OperatingConditions != "" {
		fmt.Printf("Operating conditions: %s\n", lib.OperatingConditions)
	}
	for _, key := range []string{"delay_model", "nom_voltage", "nom_temperature", "nom_process", "time_unit", "voltage_unit"} {
		if v, ok := lib.Params[key]; ok {
			fmt.Printf("  %-16s %s\n", key, v.String())
		}
	}
	if len(lib.VoltageMaps) > 0 {
		fmt.Printf("Voltage maps: %d rails\n", len(lib.VoltageMaps))
		if verbose {
			for name, volts := range lib.VoltageMaps {
				fmt.Printf("  %-16s %g V\n", name, volts)
			}
		}
	}

	fmt.Printf("\nCells: %d total\n", len(lib.Cells))
	names := lib.CellNames()
	limit := len(names)
	if !verbose && limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		cell := lib.Cell(names[i])
		arcs := len(cell.TimingArcs())
		fmt.Printf("  %-28s area=%-8g pins=%-3d arcs=%d\n",
			cell.Name, cell.Area, len(cell.Pins), arcs)
	}
	if limit < len(names) {
		fmt.Printf("  ... and %d more cells (use -v to show all)\n", len(names)-limit)
	}

	if len(res.Diagnostics) > 0 {
		fmt.Printf("\nDiagnostics: %d\n", len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			fmt.Printf("  %s\n", d.String())
		}
	}
	if res.Incomplete {
		fmt.Println("\nParse incomplete: not all cells were decoded")
	}
	return nil
}
