package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/markov"
	"github.com/davesmith10/tiedye/internal/pipeline"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the color transition matrix for a palette",
	RunE:  runMatrix,
}

func init() {
	addDesignFlags(matrixCmd)
	matrixCmd.Flags().Bool("json", false, "Print as JSON")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	design, err := loadDesign(cmd)
	if err != nil {
		return err
	}
	opts, err := pipeline.FromDesign(design)
	if err != nil {
		return err
	}

	m, err := markov.NewMatrix(opts.Colors, opts.Background)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	states := m.States()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"from \\ to"}
	for _, c := range states {
		header = append(header, dye.Name(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, from := range states {
		row, err := m.Row(from)
		if err != nil {
			return err
		}
		cells := []string{dye.Name(from)}
		for _, p := range row {
			cells = append(cells, fmt.Sprintf("%.4f", p))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
