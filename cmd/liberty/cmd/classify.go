package cmd

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/taxonomy"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <liberty-file>",
	Short: "Group library cells by logic type",
	Long: `Parse a Liberty file and group its cells by inferred logic type
(AND2, NAND3, INV, DFF, ...), using cell names and function expressions.

Examples:
  liberty classify asap7.lib
  liberty classify -v asap7.lib`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	res, err := loadLibrary(args[0])
	if err != nil {
		return err
	}

	cl := taxonomy.NewClassifier(nil)
	groups := cl.ClassifyLibrary(res.Library)

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Printf("Cell types: %d\n", len(types))
	for _, t := range types {
		cells := groups[t]
		fmt.Printf("  %-12s %d cells\n", t, len(cells))
		if verbose {
			for _, name := range cells {
				fmt.Printf("    %s\n", name)
			}
		}
	}
	return nil
}
