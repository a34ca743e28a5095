package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/export"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect an image's size, format and colors",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().Int("top", 10, "Number of colors to list")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	top, _ := cmd.Flags().GetInt("top")

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := export.Inspect(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Format:     %s\n", info.Format)
	fmt.Fprintf(out, "File size:  %d bytes (%.1f KB)\n", len(data), float64(len(data))/1024)
	fmt.Fprintf(out, "Colors:     %d\n", len(info.Colors))

	total := info.Width * info.Height
	for i, cc := range info.Colors {
		if i == top {
			fmt.Fprintf(out, "  ... %d more\n", len(info.Colors)-top)
			break
		}
		fmt.Fprintf(out, "  %-8s %s %7d  %5.1f%%\n",
			dye.Name(cc.Color), cc.Color.Hex(), cc.Count, 100*float64(cc.Count)/float64(total))
	}

	return nil
}
