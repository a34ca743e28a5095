package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/dye"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the named dyes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, n := range dye.Palette {
			fmt.Fprintf(out, "%s  %-7s %s\n", n.Key, n.Name, n.Color.Hex())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}
