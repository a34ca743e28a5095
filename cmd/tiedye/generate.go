package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/config"
	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/pipeline"
	"github.com/davesmith10/tiedye/internal/preview"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tie-dye image and write it to a file",
	RunE:  runGenerate,
}

func init() {
	addDesignFlags(generateCmd)
	generateCmd.Flags().StringP("pattern", "p", "s", "Pattern: h (horizontal), v (vertical) or s (splatter)")
	generateCmd.Flags().Int("width", 100, "Image width in pixels")
	generateCmd.Flags().Int("height", 100, "Image height in pixels")
	generateCmd.Flags().Uint64("seed", 0, "Random seed (default: random)")
	generateCmd.Flags().StringP("output", "o", "tiedye.png", "Output image file")
	generateCmd.Flags().String("format", "", "Output format: png, jpeg, bmp or tiff (default: from output extension)")
	generateCmd.Flags().Int("scale", 1, "Integer upscale factor")
	generateCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	generateCmd.Flags().Bool("preview", false, "Also draw the image in the terminal")
	rootCmd.AddCommand(generateCmd)
}

// addDesignFlags registers the flags shared by commands that take a
// palette.
func addDesignFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Design file (.toml, .yaml)")
	cmd.Flags().String("colors", "", "Comma-separated dyes: keys (b,v,p,y,o,g,w), names or hex colors")
	cmd.Flags().StringP("background", "b", "w", "Background color")
}

// loadDesign builds a design from, in increasing precedence, the defaults,
// the --config file, TIEDYE_* variables and explicitly set flags.
func loadDesign(cmd *cobra.Command) (config.Design, error) {
	d := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if d, err = config.Load(path); err != nil {
			return d, err
		}
	}
	if err := config.ApplyEnv(&d, os.LookupEnv); err != nil {
		return d, err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	if flags.Changed("colors") {
		s, _ := flags.GetString("colors")
		d.Colors = config.SplitList(s)
	}
	str("background", &d.Background)
	str("pattern", &d.Pattern)
	str("output", &d.Output)
	str("format", &d.Format)
	num("width", &d.Width)
	num("height", &d.Height)
	num("scale", &d.Scale)
	num("quality", &d.Quality)
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		d.Seed = &seed
	}

	if len(d.Colors) == 0 {
		return d, fmt.Errorf("no dyes given: use --colors or a design file")
	}
	return d, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	showPreview, _ := cmd.Flags().GetBool("preview")

	design, err := loadDesign(cmd)
	if err != nil {
		return err
	}

	opts, err := pipeline.FromDesign(design)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(opts)
	if err != nil {
		return fmt.Errorf("generation: %w", err)
	}

	if err := os.WriteFile(design.Output, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"output": design.Output,
		"seed":   opts.Seed,
	}).Info("image written")

	out := cmd.OutOrStdout()
	if showPreview {
		if err := preview.Render(out, result.Image, preview.DetectOptions()); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	fmt.Fprintf(out, "Generated %dx%d %s pattern (seed %d)\n",
		result.Image.Width, result.Image.Height, opts.Pattern, opts.Seed)
	fmt.Fprintf(out, "Dyes:       %s on %s\n", dyeNames(opts.Colors), dye.Name(opts.Background))
	fmt.Fprintf(out, "Output:     %s (%d bytes)\n", design.Output, len(result.Data))

	return nil
}

func dyeNames(colors []dye.Color) string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = dye.Name(c)
	}
	return strings.Join(names, ", ")
}
